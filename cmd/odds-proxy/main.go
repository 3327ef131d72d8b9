package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oddsgate/odds-proxy/pkg/cache"
	"github.com/oddsgate/odds-proxy/pkg/logging"
	"github.com/oddsgate/odds-proxy/pkg/proxy"
	"github.com/oddsgate/odds-proxy/pkg/upstream"
)

func main() {
	config := loadConfig()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(config.LogLevel),
		Pretty: config.LogPretty,
		Output: os.Stderr,
	})

	if config.APIKey == "" {
		logger.Fatal().Msg("ODDS_API_KEY is required")
	}

	store := cache.NewStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.SweepMaxAge > 0 {
		go store.Janitor(ctx, time.Minute, config.SweepMaxAge, logging.NewLogger("cache"))
	}

	p := proxy.New(store, upstream.New(config.UpstreamURL, config.APIKey))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/v1/odds", p.OddsHandler())
	r.Get("/v1/events/{id}/odds", p.EventOddsHandler())

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("upstream", config.UpstreamURL).
			Msg("Starting odds proxy")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		logger.Fatal().Err(err).Msg("Server failed")

	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Graceful shutdown failed, closing")
			srv.Close()
		}
	}

	logger.Info().Msg("Shutdown complete")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Config holds application configuration.
type Config struct {
	Port        string
	APIKey      string
	UpstreamURL string
	LogLevel    string
	LogPretty   bool
	SweepMaxAge time.Duration
}

// loadConfig loads configuration from environment variables.
func loadConfig() Config {
	sweepSecs, err := strconv.Atoi(getEnv("CACHE_SWEEP_MAX_AGE", "600"))
	if err != nil || sweepSecs < 0 {
		sweepSecs = 600
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		APIKey:      os.Getenv("ODDS_API_KEY"),
		UpstreamURL: getEnv("UPSTREAM_URL", upstream.DefaultBaseURL),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getEnv("LOG_PRETTY", "false") == "true",
		SweepMaxAge: time.Duration(sweepSecs) * time.Second,
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
