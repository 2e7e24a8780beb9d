package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weather-now/internal/conditions"
	"weather-now/internal/location"
	"weather-now/internal/owm"
	"weather-now/internal/server/utils"
	"weather-now/pkg/metrics"
)

// WeatherHandler is the presentation boundary: it turns query parameters
// into a lookup, and results or errors into the payload the UI shows.
type WeatherHandler struct {
	client   *owm.Client
	provider location.Provider
	logger   *zap.Logger
	metrics  *metrics.Collector
}

func NewWeatherHandler(client *owm.Client, provider location.Provider, logger *zap.Logger, collector *metrics.Collector) *WeatherHandler {
	return &WeatherHandler{
		client:   client,
		provider: provider,
		logger:   logger,
		metrics:  collector,
	}
}

// GetWeather serves GET /weather?city=X or GET /weather?lat=..&lon=..
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	reqLogger := h.requestLogger(c)

	var req WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	var query owm.Query
	switch {
	case req.City != "":
		query = owm.ByCity(req.City)
	case req.Lat != nil && req.Lon != nil:
		if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
			reqLogger.Warn("Invalid coordinates", zap.Any("errors", verrs))
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request parameters",
				Code:    "INVALID_PARAMS",
				Details: verrs[0].Message,
			})
			return
		}
		query = owm.ByCoordinates(*req.Lat, *req.Lon)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: "either city or lat and lon are required",
		})
		return
	}

	h.serve(c, reqLogger, query)
}

// GetWeatherByLocation serves GET /weather/location: it resolves a
// one-shot coordinate fix through the configured provider, then runs the
// same lookup as a coordinate query.
func (h *WeatherHandler) GetWeatherByLocation(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.requestLogger(c)

	coords, err := h.provider.OneShot(ctx)
	if err != nil {
		reqLogger.Warn("Location lookup failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: location.UserMessage(err),
			Code:  "LOCATION_ERROR",
		})
		return
	}

	h.serve(c, reqLogger, owm.ByCoordinates(coords.Lat, coords.Lon))
}

func (h *WeatherHandler) serve(c *gin.Context, reqLogger *zap.Logger, query owm.Query) {
	ctx := utils.GetContextFromGinContext(c)

	if err := query.Validate(); err != nil {
		reqLogger.Warn("Invalid query", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	reqLogger.Info("Processing weather request", zap.String("query", query.String()))

	result, err := h.client.Fetch(ctx, query)
	if err != nil {
		h.renderFetchError(c, reqLogger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUpstreamRequest("current_weather", "success")
	}

	keys := conditions.KeysFor(result.Condition)

	c.JSON(http.StatusOK, WeatherResponse{
		City:               result.City,
		TemperatureCelsius: result.TemperatureCelsius,
		TemperatureDisplay: owm.DisplayTemperature(result.TemperatureCelsius),
		Condition:          result.Condition,
		IconCode:           result.IconCode,
		Background:         keys.Background,
		Icon:               keys.Icon,
	})
}

// renderFetchError maps the client error taxonomy to HTTP statuses and
// the messages the user sees. None of these are fatal; the user simply
// re-triggers the lookup.
func (h *WeatherHandler) renderFetchError(c *gin.Context, reqLogger *zap.Logger, err error) {
	var apiErr *owm.APIError
	if !errors.As(err, &apiErr) {
		reqLogger.Error("Weather lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch weather data",
			Code:    "INTERNAL_ERROR",
			Details: err.Error(),
		})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUpstreamRequest("current_weather", apiErr.Kind.String())
	}

	reqLogger.Warn("Weather lookup failed",
		zap.String("kind", apiErr.Kind.String()),
		zap.String("message", apiErr.Message))

	switch {
	case apiErr.IsMissingAPIKey():
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: apiErr.Message,
			Code:  "MISSING_API_KEY",
		})
	case apiErr.Kind == owm.KindNetwork:
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   apiErr.Message,
			Code:    "UPSTREAM_UNREACHABLE",
			Details: apiErr.Detail,
		})
	case apiErr.Kind == owm.KindMalformed:
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: apiErr.Message,
			Code:  "UPSTREAM_MALFORMED",
		})
	default:
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: apiErr.Message,
			Code:  "API_ERROR",
		})
	}
}

func (h *WeatherHandler) requestLogger(c *gin.Context) *zap.Logger {
	if requestID := utils.GetRequestIDFromGinContext(c); requestID != "" {
		return h.logger.With(zap.String("request_id", requestID))
	}
	return h.logger
}
