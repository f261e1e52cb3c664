package astronomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentMoonPhaseStableWithinDay(t *testing.T) {
	morning := time.Date(2024, time.March, 10, 0, 5, 0, 0, time.UTC)
	night := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)
	require.Equal(t, CurrentMoonPhase(morning), CurrentMoonPhase(night))
}

func TestCurrentMoonPhaseUsesUTCDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-11 05:00 JST is still 2024-03-10 in UTC.
	local := time.Date(2024, time.March, 11, 5, 0, 0, 0, tokyo)
	utc := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	require.Equal(t, CurrentMoonPhase(utc), CurrentMoonPhase(local))
}

func TestCurrentMoonPhaseRange(t *testing.T) {
	day := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		reading := CurrentMoonPhase(day.AddDate(0, 0, i))
		require.GreaterOrEqual(t, reading.Phase, 0.0)
		require.Less(t, reading.Phase, 1.0)
		require.Equal(t, PhaseName(reading.Phase), reading.Name)
	}
}

func TestCurrentMoonPhaseKnownDates(t *testing.T) {
	// The reference epoch is itself a new moon.
	require.Equal(t, NewMoon, CurrentMoonPhase(time.Date(2000, time.January, 6, 0, 0, 0, 0, time.UTC)).Name)
	// Roughly half a synodic month later the moon is full.
	require.Equal(t, FullMoon, CurrentMoonPhase(time.Date(2000, time.January, 21, 0, 0, 0, 0, time.UTC)).Name)
}

func TestPhaseNameWrapsAroundNewMoon(t *testing.T) {
	require.Equal(t, NewMoon, PhaseName(0.0))
	require.Equal(t, NewMoon, PhaseName(0.999))
	require.Equal(t, NewMoon, PhaseName(0.9375))
	require.Equal(t, WaxingCrescent, PhaseName(0.0625))
	require.Equal(t, FullMoon, PhaseName(0.5))
	require.Equal(t, WaningCrescent, PhaseName(0.9374))
}

func TestPhaseNamePartitionsUnitInterval(t *testing.T) {
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		phase := float64(i) / 1000
		name := PhaseName(phase)
		require.Equal(t, thresholdName(phase), name, "phase %.3f", phase)
		counts[name]++
	}
	require.Len(t, counts, 8)
	total := 0
	for _, n := range counts {
		total += n
	}
	require.Equal(t, 1000, total)
}

// thresholdName is the explicit threshold ladder the bucket arithmetic must agree with.
func thresholdName(phase float64) string {
	switch {
	case phase < 0.0625 || phase >= 0.9375:
		return NewMoon
	case phase < 0.1875:
		return WaxingCrescent
	case phase < 0.3125:
		return FirstQuarter
	case phase < 0.4375:
		return WaxingGibbous
	case phase < 0.5625:
		return FullMoon
	case phase < 0.6875:
		return WaningGibbous
	case phase < 0.8125:
		return LastQuarter
	default:
		return WaningCrescent
	}
}

func TestWithMoonPhaseKeepsFetchedFields(t *testing.T) {
	sunrise := time.Date(2024, time.June, 15, 5, 47, 0, 0, time.UTC)
	snap := Snapshot{Sunrise: &sunrise}
	merged := snap.WithMoonPhase(MoonPhaseReading{Phase: 0.25, Name: FirstQuarter})

	require.Equal(t, &sunrise, merged.Sunrise)
	require.NotNil(t, merged.MoonPhase)
	require.Equal(t, 0.25, *merged.MoonPhase)
	require.Equal(t, FirstQuarter, merged.MoonPhaseName)
	require.Nil(t, snap.MoonPhase)
}
