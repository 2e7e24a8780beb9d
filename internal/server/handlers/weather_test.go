package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"weather-now/internal/config"
	"weather-now/internal/location"
	"weather-now/internal/owm"
	"weather-now/pkg/telemetry"
)

type deniedProvider struct{}

func (deniedProvider) OneShot(ctx context.Context) (location.Coordinates, error) {
	return location.Coordinates{}, location.ErrDenied
}

func newTestRouter(t *testing.T, upstreamURL, apiKey string, provider location.Provider) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	client := owm.NewClient(config.OpenWeatherConfig{
		BaseURL: upstreamURL,
		APIKey:  apiKey,
		Timeout: 5,
	}, zaptest.NewLogger(t), &telemetry.Telemetry{})

	if provider == nil {
		provider = location.NewStatic(52.52, 13.41)
	}

	handler := NewWeatherHandler(client, provider, zaptest.NewLogger(t), nil)

	router := gin.New()
	router.GET("/weather", handler.GetWeather)
	router.GET("/weather/location", handler.GetWeatherByLocation)
	return router
}

func TestGetWeatherByCity(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		w.Write([]byte(`{"cod":200,"name":"Paris","main":{"temp":21.9},"weather":[{"description":"light rain","icon":"10d"}]}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=Paris", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp WeatherResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Paris", resp.City)
	assert.Equal(t, 21.9, resp.TemperatureCelsius)
	assert.Equal(t, "21°C", resp.TemperatureDisplay)
	assert.Equal(t, "light rain", resp.Condition)
	assert.Equal(t, "10d", resp.IconCode)
	assert.EqualValues(t, "rainy", resp.Background)
	assert.EqualValues(t, "rainy", resp.Icon)
}

func TestGetWeatherByCoordinates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.520000", r.URL.Query().Get("lat"))
		assert.Equal(t, "13.410000", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"cod":200,"name":"Berlin","main":{"temp":5.2},"weather":[{"description":"few clouds","icon":"02d"}]}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?lat=52.52&lon=13.41", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp WeatherResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// "few clouds" keeps the clear-sky background but the overcast icon.
	assert.EqualValues(t, "clear_sky", resp.Background)
	assert.EqualValues(t, "overcast", resp.Icon)
}

func TestGetWeatherMissingParams(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0", "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PARAMS", resp.Code)
}

func TestGetWeatherLatitudeOutOfRange(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0", "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?lat=95&lon=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PARAMS", resp.Code)
	assert.Contains(t, resp.Details, "latitude")
}

func TestGetWeatherAPIReportedError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":404,"message":"city not found"}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=Nowheresville", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "API_ERROR", resp.Code)
	assert.Equal(t, "city not found", resp.Error)
}

func TestGetWeatherMissingAPIKey(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0", "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=Paris", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_API_KEY", resp.Code)
	assert.Equal(t, "API Key is missing", resp.Error)
}

func TestGetWeatherMalformedUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=Paris", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UPSTREAM_MALFORMED", resp.Code)
}

func TestGetWeatherByLocation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "52.520000", r.URL.Query().Get("lat"))
		w.Write([]byte(`{"cod":200,"name":"Berlin","main":{"temp":5.2},"weather":[{"description":"snow","icon":"13d"}]}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather/location", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp WeatherResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, "snowy", resp.Background)
	assert.EqualValues(t, "snowy", resp.Icon)
}

func TestGetWeatherByLocationDenied(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:0", "test-key", deniedProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather/location", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LOCATION_ERROR", resp.Code)
	assert.Equal(t, location.UserMessage(location.ErrDenied), resp.Error)
}
