package server

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	middleware "github.com/urbanphys/comfortsim/internal/server/middlewares"
)

// ServerConfig holds configuration options for the HTTP server
type ServerConfig struct {
	CacheSize      int     // Size of the LRU response cache
	RateLimit      float64 // Requests per second
	RateLimitBurst int     // Maximum burst size for rate limiting
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		CacheSize:      1000,
		RateLimit:      5.0, // 5 requests per second
		RateLimitBurst: 10,  // Burst of 10 requests
	}
}

// SetupServer builds the HTTP handler with the full middleware chain and
// every route registered. Metrics are registered on the given registry.
func SetupServer(
	service SimulationService,
	config ServerConfig,
	logger *logrus.Logger,
	registry *prometheus.Registry,
) (http.Handler, error) {
	cache, err := middleware.NewCache(config.CacheSize)
	if err != nil {
		return nil, err
	}

	requests, latency := middleware.NewMetrics()
	if err := registry.Register(requests); err != nil {
		return nil, err
	}
	if err := registry.Register(latency); err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)

	srv := &Server{
		service:   service,
		validator: NewRequestValidator(),
		logger:    logger,
	}

	r := mux.NewRouter()
	r.Use(
		middleware.RequestIDMiddleware,                  // Add request ID first
		middleware.RateLimitMiddleware(limiter),         // Rate limit early
		middleware.LoggingMiddleware(logger),            // Log all requests (with request ID)
		middleware.MetricsMiddleware(requests, latency), // Collect metrics
		cache.Middleware,                                // Cache last to avoid caching errors
	)

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/simulations", srv.handleSimulate).Methods("POST")
	r.HandleFunc("/simulations/{id}", srv.handleGetSimulation).Methods("GET")
	r.HandleFunc("/materials", srv.handleListMaterials).Methods("GET")
	r.HandleFunc("/materials/{name}", srv.handleGetMaterial).Methods("GET")
	r.HandleFunc("/annual-results", srv.handleAnnualResults).Methods("POST")

	// The metrics endpoint sits outside the chain so scrapes are neither
	// rate limited nor cached.
	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	root.Handle("/", r)

	return handlers.RecoveryHandler()(handlers.CompressHandler(root)), nil
}
