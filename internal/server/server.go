package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"weather-now/internal/config"
	"weather-now/internal/location"
	"weather-now/internal/owm"
	"weather-now/internal/server/handlers"
	"weather-now/internal/server/middlewares"
	"weather-now/pkg/metrics"
	"weather-now/pkg/telemetry"
)

type Server struct {
	engine   *gin.Engine
	server   *http.Server
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	registry *prometheus.Registry
}

func NewServer(logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	cfg := config.Get()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector("weather_now", registry)

	client := owm.NewClient(cfg.OpenWeather, logger, tele)
	icons := owm.NewIconFetcher(cfg.OpenWeather, logger, collector)
	provider := location.NewStatic(cfg.OpenWeather.Location.Lat, cfg.OpenWeather.Location.Lon)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(middlewares.MetricsMiddleware(collector))

	s := &Server{
		engine:   engine,
		logger:   logger,
		tele:     tele,
		registry: registry,
	}

	s.setupRoutes(client, icons, provider, collector)

	return s
}

func (s *Server) setupRoutes(client *owm.Client, icons *owm.IconFetcher, provider location.Provider, collector *metrics.Collector) {
	weather := handlers.NewWeatherHandler(client, provider, s.logger, collector)
	icon := handlers.NewIconHandler(icons, s.logger)
	health := handlers.NewHealthHandler(s.logger)

	// Business endpoints
	s.engine.GET("/weather", weather.GetWeather)
	s.engine.GET("/weather/location", weather.GetWeatherByLocation)
	s.engine.GET("/icons/:code", icon.GetIcon)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}

func (s *Server) Start() error {
	cfg := config.Get()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
