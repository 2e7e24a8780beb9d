// Package owm is the OpenWeatherMap client: one-shot current-weather
// lookups by city or coordinates, and the secondary icon image fetch.
package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"weather-now/internal/config"
	"weather-now/pkg/telemetry"
)

// CurrentWeather is the parsed result of a successful lookup.
// TemperatureCelsius keeps the raw float; truncation for display is a
// presentation concern (see DisplayTemperature).
type CurrentWeather struct {
	City               string
	TemperatureCelsius float64
	Condition          string
	IconCode           string
}

const fallbackCondition = "N/A"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewClient(cfg config.OpenWeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.HTTPTimeout(),
		},
		logger: logger,
		tele:   tele,
	}
}

// currentWeatherResponse mirrors the OpenWeatherMap current-weather body.
// cod is a number on success but a string on some error responses, so it
// is decoded through json.Number. main and weather are optional: their
// absence falls back to defaults rather than failing the parse.
type currentWeatherResponse struct {
	Cod     json.Number `json:"cod"`
	Message string      `json:"message"`
	Name    string      `json:"name"`
	Main    *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Fetch performs a single current-weather lookup. One attempt, no
// retries; concurrent calls are independent. The request carries ctx, so
// cancelling the caller aborts the upstream call.
//
// All failures come back as *APIError. A missing API key is reported
// before any network I/O.
func (c *Client) Fetch(ctx context.Context, query Query) (*CurrentWeather, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "owm.Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("query", query.String()))

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	if c.apiKey == "" {
		c.logger.Warn("Weather fetch attempted without API key")
		span.SetAttributes(attribute.Bool("success", false))
		return nil, newAPIReportedError(missingKeyMessage)
	}

	u, err := url.Parse(fmt.Sprintf("%s/weather", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	query.apply(q)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Weather request failed", zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false))
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, newNetworkError(err)
	}

	result, apiErr := parseCurrentWeather(body)
	if apiErr != nil {
		c.logger.Warn("Weather request rejected",
			zap.String("kind", apiErr.Kind.String()),
			zap.String("message", apiErr.Message))
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apiErr
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.String("city", result.City),
	)

	c.logger.Debug("Weather fetched",
		zap.String("city", result.City),
		zap.Float64("temp_celsius", result.TemperatureCelsius),
		zap.String("condition", result.Condition))

	return result, nil
}

// parseCurrentWeather turns a response body into a typed result or a
// typed error. Only an unparseable top-level object is malformed; absent
// main/weather subfields fall back to temp 0.0 and condition "N/A".
func parseCurrentWeather(body []byte) (*CurrentWeather, *APIError) {
	var resp currentWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newMalformedError(err.Error())
	}

	if cod, err := resp.Cod.Int64(); err == nil && cod != 200 {
		message := resp.Message
		if message == "" {
			message = fmt.Sprintf("API request failed with code %d", cod)
		}
		return nil, newAPIReportedError(message)
	}

	result := &CurrentWeather{
		City:      resp.Name,
		Condition: fallbackCondition,
	}

	if resp.Main != nil {
		result.TemperatureCelsius = resp.Main.Temp
	}

	if len(resp.Weather) > 0 {
		if desc := resp.Weather[0].Description; desc != "" {
			result.Condition = desc
		}
		result.IconCode = resp.Weather[0].Icon
	}

	return result, nil
}

// DisplayTemperature renders a Celsius value the way the screen shows
// it: truncated toward zero, so 21.9 is "21°C" and -3.7 is "-3°C".
func DisplayTemperature(celsius float64) string {
	return fmt.Sprintf("%d°C", int(math.Trunc(celsius)))
}
