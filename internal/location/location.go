// Package location resolves a geographic coordinate. The browser normally
// supplies one; this resolver covers the fallback path where the user types
// a place name instead of granting geolocation.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelvins/geocoder"
)

// ErrUnavailable is the human-readable failure state. The resolver bounds
// its wait and reports this instead of hanging.
var ErrUnavailable = errors.New("location unavailable")

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Resolver geocodes place names via the Google geocoding API.
type Resolver struct {
	timeout time.Duration
}

// NewResolver configures the geocoder. A zero timeout defaults to 20s.
func NewResolver(apiKey string, timeout time.Duration) *Resolver {
	geocoder.ApiKey = apiKey
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Resolver{timeout: timeout}
}

// Resolve returns the coordinate for a city (optionally qualified by a
// country). Low accuracy is fine; the forecast is city-scale anyway.
func (r *Resolver) Resolve(ctx context.Context, city, country string) (Coordinate, error) {
	if city == "" {
		return Coordinate{}, fmt.Errorf("%w: no city given", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		loc geocoder.Location
		err error
	}
	ch := make(chan result, 1)

	// The geocoder call is blocking with no context support; run it in a
	// goroutine so the bounded wait holds regardless.
	go func() {
		loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: country})
		ch <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return Coordinate{}, fmt.Errorf("%w: timed out resolving %q", ErrUnavailable, city)
	case res := <-ch:
		if res.err != nil {
			return Coordinate{}, fmt.Errorf("%w: %v", ErrUnavailable, res.err)
		}
		c := Coordinate{Lat: res.loc.Latitude, Lng: res.loc.Longitude}
		if !c.Valid() {
			return Coordinate{}, fmt.Errorf("%w: geocoder returned out-of-range coordinate", ErrUnavailable)
		}
		return c, nil
	}
}
