package horoscope

import "time"

// signStart lists, in calendar order, the first day of each sign within its
// starting month. A date before the cutoff belongs to the previous sign.
var signStart = [12]struct {
	cutoff int
	sign   string
	prev   string
}{
	time.January - 1:   {20, "aquarius", "capricorn"},
	time.February - 1:  {19, "pisces", "aquarius"},
	time.March - 1:     {21, "aries", "pisces"},
	time.April - 1:     {20, "taurus", "aries"},
	time.May - 1:       {21, "gemini", "taurus"},
	time.June - 1:      {21, "cancer", "gemini"},
	time.July - 1:      {23, "leo", "cancer"},
	time.August - 1:    {23, "virgo", "leo"},
	time.September - 1: {23, "libra", "virgo"},
	time.October - 1:   {23, "scorpio", "libra"},
	time.November - 1:  {22, "sagittarius", "scorpio"},
	time.December - 1:  {22, "capricorn", "sagittarius"},
}

// Sign returns the lowercase tropical zodiac sign for a calendar day.
// Callers pass a valid month; out of range months are clamped.
func Sign(month time.Month, day int) string {
	if month < time.January {
		month = time.January
	}
	if month > time.December {
		month = time.December
	}
	entry := signStart[month-1]
	if day >= entry.cutoff {
		return entry.sign
	}
	return entry.prev
}
