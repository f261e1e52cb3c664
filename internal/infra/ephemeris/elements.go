package ephemeris

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	pe "github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// orbit yields heliocentric ecliptic coordinates referenced to the equinox of date.
type orbit interface {
	Position(jde float64) (l, b unit.Angle, r float64)
}

// meanOrbit solves Kepler's equation over the mean elements of Meeus table 31.A.
// Accurate to a fraction of a degree for the inner planets and about a degree
// for Uranus and Neptune over the twentieth and twenty-first centuries.
type meanOrbit int

func (p meanOrbit) Position(jde float64) (l, b unit.Angle, r float64) {
	var e pe.Elements
	pe.Mean(int(p), jde, &e)
	E := kepler.Kepler3(e.Ecc, e.Lon-e.Peri)
	nu := kepler.True(E, e.Ecc)
	r = kepler.Radius(E, e.Ecc, e.Axis)

	su, cu := (e.Peri - e.Node + nu).Sincos()
	si, ci := e.Inc.Sincos()
	l = (e.Node + unit.Angle(math.Atan2(ci*su, cu))).Mod1()
	b = unit.Angle(math.Asin(si * su))
	return l, b, r
}

// earthOrbit mirrors the low precision solar theory; table 31.A omits the
// node of the Earth's orbit.
type earthOrbit struct{}

func (earthOrbit) Position(jde float64) (l, b unit.Angle, r float64) {
	T := base.J2000Century(jde)
	s, _ := solar.True(T)
	return (s + math.Pi).Mod1(), 0, solar.Radius(T)
}

var meanOrbits = map[int]orbit{
	pe.Mercury: meanOrbit(pe.Mercury),
	pe.Venus:   meanOrbit(pe.Venus),
	pe.Earth:   earthOrbit{},
	pe.Mars:    meanOrbit(pe.Mars),
	pe.Jupiter: meanOrbit(pe.Jupiter),
	pe.Saturn:  meanOrbit(pe.Saturn),
	pe.Uranus:  meanOrbit(pe.Uranus),
	pe.Neptune: meanOrbit(pe.Neptune),
}
