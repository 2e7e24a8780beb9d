package config

import (
	"sync/atomic"
	"time"
)

var configValue atomic.Value

func Get() *Config {
	return configValue.Load().(*Config)
}

func Set(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string            `mapstructure:"version"`
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	OpenWeather OpenWeatherConfig `mapstructure:"openweather"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// OpenWeatherConfig holds everything needed to talk to OpenWeatherMap:
// the current-weather endpoint, the icon image host and the API key.
type OpenWeatherConfig struct {
	BaseURL      string         `mapstructure:"base_url"`
	IconBaseURL  string         `mapstructure:"icon_base_url"`
	APIKey       string         `mapstructure:"api_key"`
	Timeout      int            `mapstructure:"timeout"`
	IconCacheTTL int            `mapstructure:"icon_cache_ttl"`
	Location     LocationConfig `mapstructure:"location"`
}

// LocationConfig is the coordinate pair served by the static location
// provider when a client asks for "current location" weather.
type LocationConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
}

func (c OpenWeatherConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		OpenWeather: OpenWeatherConfig{
			BaseURL:      "https://api.openweathermap.org/data/2.5",
			IconBaseURL:  "https://openweathermap.org",
			APIKey:       "",
			Timeout:      10,
			IconCacheTTL: 3600,
			Location: LocationConfig{
				Lat: 48.8566,
				Lon: 2.3522,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
