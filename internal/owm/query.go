package owm

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Query identifies exactly one lookup target: a city name or a
// coordinate pair. Construct it with ByCity or ByCoordinates.
type Query struct {
	city     string
	lat, lon float64
	byCoords bool
}

func ByCity(name string) Query {
	return Query{city: strings.TrimSpace(name)}
}

func ByCoordinates(lat, lon float64) Query {
	return Query{lat: lat, lon: lon, byCoords: true}
}

func (q Query) Validate() error {
	if q.byCoords {
		if math.IsNaN(q.lat) || math.IsInf(q.lat, 0) || q.lat < -90 || q.lat > 90 {
			return fmt.Errorf("latitude %v is out of range [-90, 90]", q.lat)
		}
		if math.IsNaN(q.lon) || math.IsInf(q.lon, 0) || q.lon < -180 || q.lon > 180 {
			return fmt.Errorf("longitude %v is out of range [-180, 180]", q.lon)
		}
		return nil
	}
	if q.city == "" {
		return fmt.Errorf("city name must not be empty")
	}
	return nil
}

// apply sets the target parameters on an outgoing request.
func (q Query) apply(values url.Values) {
	if q.byCoords {
		values.Set("lat", fmt.Sprintf("%.6f", q.lat))
		values.Set("lon", fmt.Sprintf("%.6f", q.lon))
		return
	}
	values.Set("q", q.city)
}

func (q Query) String() string {
	if q.byCoords {
		return fmt.Sprintf("%.6f,%.6f", q.lat, q.lon)
	}
	return q.city
}
