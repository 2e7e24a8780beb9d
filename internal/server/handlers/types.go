package handlers

import "weather-now/internal/conditions"

// WeatherRequest binds the weather query: a city name, or a coordinate
// pair. Lat/Lon are pointers so presence can be told apart from zero.
type WeatherRequest struct {
	City string   `form:"city" json:"city"`
	Lat  *float64 `form:"lat" json:"lat" validate:"omitempty,latitude"`
	Lon  *float64 `form:"lon" json:"lon" validate:"omitempty,longitude"`
}

// WeatherResponse is the payload the presentation layer renders verbatim.
type WeatherResponse struct {
	City               string                   `json:"city"`
	TemperatureCelsius float64                  `json:"temperature_celsius"`
	TemperatureDisplay string                   `json:"temperature_display"`
	Condition          string                   `json:"condition"`
	IconCode           string                   `json:"icon_code,omitempty"`
	Background         conditions.BackgroundKey `json:"background"`
	Icon               conditions.IconKey       `json:"icon"`
}

// ErrorResponse represents an error surfaced to the user
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
