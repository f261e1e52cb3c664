package astronomy

import (
	"math"
	"time"

	"github.com/yanqian/ai-horoscope/pkg/util"
)

const synodicMonthDays = 29.53058867

// referenceNewMoon is the new moon of 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// Phase names in bucket order starting at phase 0.
const (
	NewMoon        = "New Moon"
	WaxingCrescent = "Waxing Crescent"
	FirstQuarter   = "First Quarter"
	WaxingGibbous  = "Waxing Gibbous"
	FullMoon       = "Full Moon"
	WaningGibbous  = "Waning Gibbous"
	LastQuarter    = "Last Quarter"
	WaningCrescent = "Waning Crescent"
)

var phaseNames = [8]string{
	NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
	FullMoon, WaningGibbous, LastQuarter, WaningCrescent,
}

// CurrentMoonPhase approximates the lunar phase for the UTC date of now.
// The instant is pinned to noon UTC so every call on the same day agrees.
func CurrentMoonPhase(now time.Time) MoonPhaseReading {
	days := util.NoonUTC(now).Sub(referenceNewMoon).Hours() / 24
	cycle := math.Mod(days, synodicMonthDays)
	if cycle < 0 {
		cycle += synodicMonthDays
	}
	phase := math.Round(cycle/synodicMonthDays*1000) / 1000
	if phase >= 1 {
		phase = 0
	}
	return MoonPhaseReading{Phase: phase, Name: PhaseName(phase)}
}

// PhaseName maps a phase in [0,1) onto eight 1/8 wide buckets centred on
// the principal phases, so values near 0 and near 1 are both New Moon.
func PhaseName(phase float64) string {
	idx := int(math.Floor(phase*8+0.5)) % 8
	if idx < 0 {
		idx += 8
	}
	return phaseNames[idx]
}
