// Command dealerdesk runs the dealership inventory API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	ddhttp "github.com/dealerdesk/dealerdesk/internal/adapter/http"
	ddnats "github.com/dealerdesk/dealerdesk/internal/adapter/nats"
	ddotel "github.com/dealerdesk/dealerdesk/internal/adapter/otel"
	"github.com/dealerdesk/dealerdesk/internal/adapter/postgres"
	ddredis "github.com/dealerdesk/dealerdesk/internal/adapter/redis"
	"github.com/dealerdesk/dealerdesk/internal/adapter/ristretto"
	"github.com/dealerdesk/dealerdesk/internal/adapter/tiered"
	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/domain/sale"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/listcache"
	"github.com/dealerdesk/dealerdesk/internal/logger"
	"github.com/dealerdesk/dealerdesk/internal/middleware"
	"github.com/dealerdesk/dealerdesk/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	slog.SetDefault(logger.New(cfg.Logging))

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"list_ttl", cfg.Cache.ListTTL,
	)

	ctx := context.Background()

	shutdownOtel, err := ddotel.Setup(ctx, cfg.Logging.Service, cfg.Otel.Endpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Error("otel shutdown failed", "error", err)
		}
	}()

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	local, err := ristretto.New(cfg.Cache.LocalMaxBytes)
	if err != nil {
		return fmt.Errorf("local cache: %w", err)
	}
	defer local.Close()

	shared, err := ddredis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.PoolSize)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() { _ = shared.Close() }()
	slog.Info("redis connected", "addr", cfg.Redis.Addr)

	tiers := tiered.New(local, shared, cfg.Cache.LocalTTL)

	queue, err := ddnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	// --- Cache layer ---

	metrics, err := listcache.NewMetrics()
	if err != nil {
		return fmt.Errorf("cache metrics: %w", err)
	}
	vehicleCache := listcache.NewListCache[vehicle.Vehicle](tiers, cfg.Cache.ListTTL, metrics)
	saleCache := listcache.NewListCache[sale.Record](tiers, cfg.Cache.ListTTL, metrics)
	invalidator := listcache.NewInvalidator(local, shared, metrics)

	// --- Services ---

	store := postgres.NewStore(pool)
	guard := service.NewExclusivityGuard(store)
	vehicleSvc := service.NewVehicleService(store, vehicleCache, invalidator)
	saleSvc := service.NewSaleService(store, saleCache, invalidator, guard)
	dealershipSvc := service.NewDealershipService(store)
	userSvc := service.NewUserService(store)
	exportSvc := service.NewExportService(store, queue, cfg.Export.Dir)

	cancelSync, err := exportSvc.Start(ctx)
	if err != nil {
		return fmt.Errorf("sync subscriber: %w", err)
	}
	defer cancelSync()

	// --- HTTP ---

	handlers := ddhttp.NewHandlers(vehicleSvc, saleSvc, dealershipSvc, userSvc, exportSvc)

	r := chi.NewRouter()
	r.Use(ddhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(ddhttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(ddhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.Timeout))
	r.Use(ddotel.HTTPMiddleware(cfg.Logging.Service))

	ddhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
