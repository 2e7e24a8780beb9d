// Package conditions maps the free-text weather description returned by
// OpenWeatherMap to the small set of presentation categories the client
// renders: a background theme and an icon.
package conditions

import "strings"

type BackgroundKey string

const (
	BackgroundClearSky     BackgroundKey = "clear_sky"
	BackgroundCloudy       BackgroundKey = "cloudy"
	BackgroundRainy        BackgroundKey = "rainy"
	BackgroundSnowy        BackgroundKey = "snowy"
	BackgroundThunderstorm BackgroundKey = "thunderstorm"
	BackgroundDefault      BackgroundKey = "default"
)

type IconKey string

const (
	IconSunny         IconKey = "sunny"
	IconOvercast      IconKey = "overcast"
	IconRainy         IconKey = "rainy"
	IconSnowy         IconKey = "snowy"
	IconThunderstorm  IconKey = "thunderstorm"
	IconCloudy        IconKey = "cloudy"
	IconCustomDefault IconKey = "custom_default"
)

// PresentationKeys bundles both derived categories for one description.
type PresentationKeys struct {
	Background BackgroundKey `json:"background"`
	Icon       IconKey       `json:"icon"`
}

// The two tables are intentionally not symmetric: "few clouds" gets the
// clear-sky background but the overcast icon, and "overcast clouds" has
// an icon entry but no background entry.
var backgroundByDescription = map[string]BackgroundKey{
	"clear sky":        BackgroundClearSky,
	"few clouds":       BackgroundClearSky,
	"scattered clouds": BackgroundCloudy,
	"broken clouds":    BackgroundCloudy,
	"mist":             BackgroundCloudy,
	"rain":             BackgroundRainy,
	"light rain":       BackgroundRainy,
	"moderate rain":    BackgroundRainy,
	"snow":             BackgroundSnowy,
	"light snow":       BackgroundSnowy,
	"moderate snow":    BackgroundSnowy,
	"thunderstorm":     BackgroundThunderstorm,
}

var iconByDescription = map[string]IconKey{
	"clear sky":        IconSunny,
	"few clouds":       IconOvercast,
	"scattered clouds": IconOvercast,
	"broken clouds":    IconOvercast,
	"overcast clouds":  IconOvercast,
	"rain":             IconRainy,
	"light rain":       IconRainy,
	"moderate rain":    IconRainy,
	"snow":             IconSnowy,
	"light snow":       IconSnowy,
	"moderate snow":    IconSnowy,
	"thunderstorm":     IconThunderstorm,
	"mist":             IconCloudy,
	"cloudy":           IconCloudy,
}

// BackgroundFor returns the background theme for a condition description.
// Matching is case-insensitive against the full description string; any
// unknown description maps to BackgroundDefault.
func BackgroundFor(description string) BackgroundKey {
	if key, ok := backgroundByDescription[strings.ToLower(description)]; ok {
		return key
	}
	return BackgroundDefault
}

// IconFor returns the icon category for a condition description. Unknown
// descriptions map to IconCustomDefault.
func IconFor(description string) IconKey {
	if key, ok := iconByDescription[strings.ToLower(description)]; ok {
		return key
	}
	return IconCustomDefault
}

// KeysFor derives both presentation keys for a condition description.
func KeysFor(description string) PresentationKeys {
	return PresentationKeys{
		Background: BackgroundFor(description),
		Icon:       IconFor(description),
	}
}
