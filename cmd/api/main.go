package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/lakeshoremuseum/museum-backend/api/routes"
	authsvc "github.com/lakeshoremuseum/museum-backend/internal/auth"
	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	checkoutsvc "github.com/lakeshoremuseum/museum-backend/internal/checkout"
	"github.com/lakeshoremuseum/museum-backend/internal/giftshop"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/internal/receipts"
	"github.com/lakeshoremuseum/museum-backend/internal/tickets"
	"github.com/lakeshoremuseum/museum-backend/pkg/config"
	"github.com/lakeshoremuseum/museum-backend/pkg/db"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
	"github.com/lakeshoremuseum/museum-backend/pkg/metrics"
	"github.com/lakeshoremuseum/museum-backend/pkg/migrate"
	pkgredis "github.com/lakeshoremuseum/museum-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	userRepo := authsvc.NewUserRepository(dbClient.DB())
	ticketsRepo := tickets.NewRepository(dbClient.DB())
	giftRepo := giftshop.NewRepository(dbClient.DB())
	membershipRepo := membership.NewRepository(dbClient.DB())
	receiptRepo := receipts.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	cartBuilder, err := cart.NewBuilder(giftRepo, ticketsRepo)
	if err != nil {
		logg.Error(ctx, "failed to create cart builder", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		cartBuilder,
		membershipRepo,
		giftRepo,
		receiptRepo,
		dbClient,
		checkoutMetrics,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Metrics:     registry,
		AuthService: authService,
		Checkout:    checkoutService,
		Tickets:     ticketsRepo,
		GiftShop:    giftRepo,
		Memberships: membershipRepo,
		Receipts:    receiptRepo,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx := logg.WithFields(runCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
		}
	case <-runCtx.Done():
		logg.Info(startCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(startCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(startCtx, "shutdown complete")
}
