package tz

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"

	"github.com/yanqian/ai-horoscope/internal/domain/geo"
)

// Finder resolves IANA zone names from coordinates using tzf's embedded polygons.
// The polygon index is loaded lazily on first use.
type Finder struct {
	once    sync.Once
	finder  tzf.F
	loadErr error
}

// NewFinder returns a lazily initialised finder.
func NewFinder() *Finder {
	return &Finder{}
}

// TimezoneAt implements geo.TimezoneFinder.
func (f *Finder) TimezoneAt(lat, lon float64) (string, error) {
	f.once.Do(func() {
		f.finder, f.loadErr = tzf.NewDefaultFinder()
	})
	if f.loadErr != nil {
		return "", fmt.Errorf("load timezone finder: %w", f.loadErr)
	}
	name := f.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", errors.New("no timezone at coordinates")
	}
	return name, nil
}

var _ geo.TimezoneFinder = (*Finder)(nil)
