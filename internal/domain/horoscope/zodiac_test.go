package horoscope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignBoundaries(t *testing.T) {
	cases := []struct {
		month        time.Month
		lastDay      int
		before, from string
	}{
		{time.January, 19, "capricorn", "aquarius"},
		{time.February, 18, "aquarius", "pisces"},
		{time.March, 20, "pisces", "aries"},
		{time.April, 19, "aries", "taurus"},
		{time.May, 20, "taurus", "gemini"},
		{time.June, 20, "gemini", "cancer"},
		{time.July, 22, "cancer", "leo"},
		{time.August, 22, "leo", "virgo"},
		{time.September, 22, "virgo", "libra"},
		{time.October, 22, "libra", "scorpio"},
		{time.November, 21, "scorpio", "sagittarius"},
		{time.December, 21, "sagittarius", "capricorn"},
	}
	for _, tc := range cases {
		t.Run(tc.month.String(), func(t *testing.T) {
			require.Equal(t, tc.before, Sign(tc.month, tc.lastDay))
			require.Equal(t, tc.from, Sign(tc.month, tc.lastDay+1))
		})
	}
}

func TestSignCoversEveryDayOfTheYear(t *testing.T) {
	seen := map[string]int{}
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == 2024 {
		sign := Sign(day.Month(), day.Day())
		require.NotEmpty(t, sign)
		seen[sign]++
		day = day.AddDate(0, 0, 1)
	}
	require.Len(t, seen, 12)
	require.Equal(t, "capricorn", Sign(time.December, 31))
	require.Equal(t, "capricorn", Sign(time.January, 1))
}
