package ephemeris

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/yanqian/ai-horoscope/internal/domain/astrology"
)

// vsopBodies maps planets to their VSOP87 series index.
var vsopBodies = map[astrology.Body]int{
	astrology.Mercury: pp.Mercury,
	astrology.Venus:   pp.Venus,
	astrology.Mars:    pp.Mars,
	astrology.Jupiter: pp.Jupiter,
	astrology.Saturn:  pp.Saturn,
	astrology.Uranus:  pp.Uranus,
	astrology.Neptune: pp.Neptune,
}

// Meeus implements astrology.Ephemeris with Jean Meeus' algorithms.
// Planets use the VSOP87B files from vsop87Dir when set. With no directory
// the VSOP87 environment variable is tried, then mean orbital elements.
type Meeus struct {
	vsop87Dir string

	mu      sync.Mutex
	planets map[int]orbit
}

// NewMeeus constructs the ephemeris.
func NewMeeus(vsop87Dir string) *Meeus {
	return &Meeus{vsop87Dir: vsop87Dir, planets: make(map[int]orbit)}
}

// BodyLongitude returns the geocentric ecliptic longitude of body in degrees.
func (m *Meeus) BodyLongitude(_ context.Context, body astrology.Body, at time.Time) (float64, error) {
	jde := julian.TimeToJD(at.UTC())
	switch body {
	case astrology.Sun:
		return solar.ApparentLongitude(base.J2000Century(jde)).Deg(), nil
	case astrology.Moon:
		lon, _, _ := moonposition.Position(jde)
		return lon.Deg(), nil
	case astrology.Pluto:
		earth, err := m.planet(pp.Earth)
		if err != nil {
			return 0, err
		}
		l, b, r := pluto.Heliocentric(jde)
		return geocentricLongitude(earth, l.Rad(), b.Rad(), r, jde), nil
	}

	ibody, ok := vsopBodies[body]
	if !ok {
		return 0, fmt.Errorf("unsupported body %s", body)
	}
	earth, err := m.planet(pp.Earth)
	if err != nil {
		return 0, err
	}
	planet, err := m.planet(ibody)
	if err != nil {
		return 0, err
	}
	l, b, r := planet.Position(jde)
	return geocentricLongitude(earth, l.Rad(), b.Rad(), r, jde), nil
}

// Ascendant returns the ecliptic longitude rising in the east.
func (m *Meeus) Ascendant(_ context.Context, at time.Time, lat, lon float64) (float64, error) {
	ramc, eps := localFrame(at, lon)
	asc := ascendant(ramc, eps, lat*math.Pi/180)
	if math.IsNaN(asc) {
		return 0, fmt.Errorf("ascendant undefined at latitude %.2f", lat)
	}
	return asc, nil
}

// HouseCusps returns Placidus cusps as a 13 element, 1-indexed slice.
func (m *Meeus) HouseCusps(_ context.Context, at time.Time, lat, lon float64) ([]float64, error) {
	ramc, eps := localFrame(at, lon)
	return placidus(ramc, eps, lat*math.Pi/180)
}

func (m *Meeus) planet(ibody int) (orbit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.planets[ibody]; ok {
		return p, nil
	}
	var p orbit
	if m.vsop87Dir != "" {
		v87, err := pp.LoadPlanetPath(ibody, m.vsop87Dir)
		if err != nil {
			return nil, fmt.Errorf("load vsop87 series %d: %w", ibody, err)
		}
		p = v87
	} else if v87, err := pp.LoadPlanet(ibody); err == nil {
		p = v87
	} else {
		mean, ok := meanOrbits[ibody]
		if !ok {
			return nil, fmt.Errorf("no orbit for series %d", ibody)
		}
		p = mean
	}
	m.planets[ibody] = p
	return p, nil
}

// geocentricLongitude converts heliocentric ecliptic coordinates of a body
// into a geocentric longitude in degrees. Light time is ignored.
func geocentricLongitude(earth orbit, l, b, r, jde float64) float64 {
	l0, b0, r0 := earth.Position(jde)
	x := r*math.Cos(b)*math.Cos(l) - r0*math.Cos(b0.Rad())*math.Cos(l0.Rad())
	y := r*math.Cos(b)*math.Sin(l) - r0*math.Cos(b0.Rad())*math.Sin(l0.Rad())
	return normalize(math.Atan2(y, x) * 180 / math.Pi)
}

// localFrame returns the right ascension of the midheaven and the true
// obliquity of the ecliptic, both in radians.
func localFrame(at time.Time, lon float64) (ramc, eps float64) {
	jd := julian.TimeToJD(at.UTC())
	gast := float64(sidereal.Apparent(jd)) / 240 // seconds of time to degrees
	ramc = normalize(gast+lon) * math.Pi / 180
	_, deps := nutation.Nutation(jd)
	eps = (nutation.MeanObliquity(jd) + deps).Rad()
	return ramc, eps
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

var _ astrology.Ephemeris = (*Meeus)(nil)
