package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"anchor/internal/api"
	"anchor/internal/availability"
	"anchor/internal/clock"
	"anchor/internal/config"
	"anchor/internal/hoursapi"
	"anchor/internal/metrics"
	"anchor/internal/promotion"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("ANCHOR_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.HoursAPI.BaseURL == "" {
		logger.Fatal().Msg("set hours_api.base_url in config")
	}

	hoursClient := hoursapi.NewClient(cfg.HoursAPI.BaseURL, cfg.HoursAPI.APIKey, cfg.HoursTimeout())
	var rdb *redis.Client
	if cfg.Redis.Address != "" && cfg.HoursCacheTTL() > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		hoursClient.UseRedisCache(rdb, cfg.HoursCacheTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	// Initial load + hot reload of the promotions catalog. A broken catalog
	// is logged and served as empty, never fatal.
	store := promotion.NewStore(nil)
	if err := config.WatchCatalog(ctx, cfg.Promotions.CatalogPath, cfg.CatalogWatchInterval(), &logger, store.Replace); err != nil {
		logger.Error().Err(err).Msg("failed to load promotions catalog")
	}

	clk := clock.NewRealClock()
	resolver := promotion.NewResolver(store, clk, logger)
	cache := availability.NewCache(cfg.AvailabilityCacheTTL(), clk)
	generator := availability.NewGenerator(hoursClient, cache, clk, logger, availability.Config{
		HorizonDays:  cfg.Availability.HorizonDays,
		SlotMinutes:  cfg.Availability.SlotMinutes,
		SlotCapacity: cfg.Availability.SlotCapacity,
	})

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	rps, burst := cfg.RateLimit()
	server := api.NewHTTPServer(api.Options{
		Port:           cfg.ServerPort(),
		APIKey:         cfg.Server.APIKey,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}, resolver, generator, logger)

	logger.Info().Int("port", cfg.ServerPort()).Msg("anchor API started")
	if err := server.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("api server error")
	}
}

func startHealthServer(ctx context.Context, port int, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		// The hours API being down is not fatal (the generator falls back),
		// so it does not gate readiness.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
