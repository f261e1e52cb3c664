package astronomy

import "time"

// Snapshot is the best-effort daily astronomy data for a location.
// Every field is optional; absent values are omitted from JSON.
type Snapshot struct {
	Sunrise       *time.Time `json:"sunrise,omitempty"`
	Sunset        *time.Time `json:"sunset,omitempty"`
	Moonrise      *time.Time `json:"moonrise,omitempty"`
	Moonset       *time.Time `json:"moonset,omitempty"`
	MoonPhase     *float64   `json:"moon_phase,omitempty"`
	MoonPhaseName string     `json:"moon_phase_name,omitempty"`
	// DayLength is expressed in seconds.
	DayLength *float64 `json:"day_length,omitempty"`
}

// IsEmpty reports whether no field is populated.
func (s Snapshot) IsEmpty() bool {
	return s.Sunrise == nil && s.Sunset == nil && s.Moonrise == nil && s.Moonset == nil &&
		s.MoonPhase == nil && s.MoonPhaseName == "" && s.DayLength == nil
}

// WithMoonPhase returns a copy with the phase fields replaced by reading.
func (s Snapshot) WithMoonPhase(reading MoonPhaseReading) Snapshot {
	phase := reading.Phase
	s.MoonPhase = &phase
	s.MoonPhaseName = reading.Name
	return s
}

// MoonPhaseReading is a locally computed lunar phase.
type MoonPhaseReading struct {
	Phase float64 `json:"moon_phase"`
	Name  string  `json:"moon_phase_name"`
}
