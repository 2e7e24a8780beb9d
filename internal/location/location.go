// Package location abstracts the one-shot coordinate lookup the weather
// flow needs when no city name is given.
package location

import (
	"context"
	"errors"
)

type Coordinates struct {
	Lat float64
	Lon float64
}

// Provider yields a single coordinate fix on demand; it never tracks
// continuously.
type Provider interface {
	OneShot(ctx context.Context) (Coordinates, error)
}

var (
	ErrDenied      = errors.New("location permission denied")
	ErrUnavailable = errors.New("location unavailable")
)

// UserMessage maps a location error to the fixed human-readable message
// shown to the user. Denial and unavailability get their own wording;
// everything else shares one generic message.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrDenied):
		return "Location access was denied. Please allow location access and try again."
	case errors.Is(err, ErrUnavailable):
		return "Could not determine your current location."
	default:
		return "Location is currently unavailable."
	}
}

// Static serves a fixed coordinate pair from configuration. It stands in
// for a device geolocation sensor on the server side.
type Static struct {
	coords Coordinates
}

func NewStatic(lat, lon float64) *Static {
	return &Static{coords: Coordinates{Lat: lat, Lon: lon}}
}

func (s *Static) OneShot(ctx context.Context) (Coordinates, error) {
	select {
	case <-ctx.Done():
		return Coordinates{}, ctx.Err()
	default:
	}

	if s.coords.Lat < -90 || s.coords.Lat > 90 || s.coords.Lon < -180 || s.coords.Lon > 180 {
		return Coordinates{}, ErrUnavailable
	}

	return s.coords, nil
}
