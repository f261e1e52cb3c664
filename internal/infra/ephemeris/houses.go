package ephemeris

import (
	"fmt"
	"math"
)

const placidusIterations = 30

// ascendant returns the rising ecliptic longitude in degrees.
func ascendant(ramc, eps, phi float64) float64 {
	y := math.Cos(ramc)
	x := -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps))
	if math.IsInf(x, 0) {
		return math.NaN()
	}
	return normalize(math.Atan2(y, x) * 180 / math.Pi)
}

// midheaven returns the culminating ecliptic longitude in degrees.
func midheaven(ramc, eps float64) float64 {
	return normalize(math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(eps)) * 180 / math.Pi)
}

// placidus trisects the diurnal and nocturnal semi arcs. Inside the polar
// circles some cusps never rise and the system is undefined.
func placidus(ramc, eps, phi float64) ([]float64, error) {
	asc := ascendant(ramc, eps, phi)
	if math.IsNaN(asc) {
		return nil, fmt.Errorf("placidus undefined at latitude %.2f", phi*180/math.Pi)
	}
	mc := midheaven(ramc, eps)

	cusps := make([]float64, 13)
	cusps[1] = asc
	cusps[10] = mc

	steps := []struct {
		house    int
		fraction float64
		above    bool
	}{
		{11, 1.0 / 3, true},
		{12, 2.0 / 3, true},
		{2, 2.0 / 3, false},
		{3, 1.0 / 3, false},
	}
	for _, step := range steps {
		lon, err := placidusCusp(ramc, eps, phi, step.fraction, step.above)
		if err != nil {
			return nil, fmt.Errorf("house %d: %w", step.house, err)
		}
		cusps[step.house] = lon
	}

	for house := 4; house <= 9; house++ {
		opposite := house + 6
		if opposite > 12 {
			opposite -= 12
		}
		cusps[house] = normalize(cusps[opposite] + 180)
	}
	return cusps, nil
}

func placidusCusp(ramc, eps, phi, fraction float64, above bool) (float64, error) {
	ra := ramc + fraction*math.Pi/2
	if !above {
		ra = ramc + math.Pi - fraction*math.Pi/2
	}
	var lambda float64
	for i := 0; i < placidusIterations; i++ {
		lambda = math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(eps))
		decl := math.Asin(math.Sin(eps) * math.Sin(lambda))
		x := math.Tan(phi) * math.Tan(decl)
		if math.Abs(x) > 1 {
			return 0, fmt.Errorf("cusp is circumpolar")
		}
		ad := math.Asin(x)
		if above {
			ra = ramc + fraction*(math.Pi/2+ad)
		} else {
			ra = ramc + math.Pi - fraction*(math.Pi/2-ad)
		}
	}
	lambda = math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(eps))
	return normalize(lambda * 180 / math.Pi), nil
}
