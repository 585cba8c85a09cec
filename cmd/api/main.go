package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/farmtofork-backend/api/controllers"
	"github.com/angelmondragon/farmtofork-backend/api/routes"
	"github.com/angelmondragon/farmtofork-backend/internal/inventory"
	"github.com/angelmondragon/farmtofork-backend/internal/orders"
	"github.com/angelmondragon/farmtofork-backend/internal/products"
	"github.com/angelmondragon/farmtofork-backend/internal/seed"
	"github.com/angelmondragon/farmtofork-backend/internal/users"
	"github.com/angelmondragon/farmtofork-backend/pkg/aiscore"
	"github.com/angelmondragon/farmtofork-backend/pkg/config"
	"github.com/angelmondragon/farmtofork-backend/pkg/db"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/angelmondragon/farmtofork-backend/pkg/metrics"
	"github.com/angelmondragon/farmtofork-backend/pkg/migrate"
	"github.com/angelmondragon/farmtofork-backend/pkg/redis"
)

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.EnsureSchema(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to prepare schema", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())

	if cfg.FeatureFlags.SeedData {
		seeder, err := seed.NewSeeder(seed.Params{Logger: logg, Users: userRepo, Products: productRepo})
		if err != nil {
			logg.Error(ctx, "failed to create seeder", err)
			os.Exit(1)
		}
		if err := seeder.Run(ctx); err != nil {
			logg.WarnErr(ctx, "seed.incomplete", err)
		}
	}

	var (
		redisClient *redis.Client
		redisPinger controllers.Pinger
		rateStore   rateLimiterStore
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		redisPinger = redisClient
		rateStore = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, login rate limiting disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	scorer := aiscore.NewClient(cfg.AIScore,
		aiscore.WithLogger(logg),
		aiscore.WithMetrics(metrics.NewAIScoreMetrics(reg)),
	)

	userService, err := users.NewService(userRepo, time.Now)
	requireService(ctx, logg, "user", err)
	productService, err := products.NewService(productRepo, scorer)
	requireService(ctx, logg, "product", err)
	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), logg)
	requireService(ctx, logg, "inventory", err)
	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, logg, metrics.NewOrderMetrics(reg), time.Now)
	requireService(ctx, logg, "order", err)

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisPinger,
			RateStore:        rateStore,
			Gatherer:         reg,
			HTTPMetrics:      metrics.NewHTTPMetrics(reg),
			UserService:      userService,
			ProductService:   productService,
			InventoryService: inventoryService,
			OrderService:     orderService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(serveCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(serveCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(serveCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serveCtx, "graceful shutdown failed", err)
		exitCode = 1
	}

	if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
		logg.Error(serveCtx, "error closing resources", err)
		exitCode = 1
	}

	logg.Info(serveCtx, "api server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "service", name), "failed to create service", err)
	os.Exit(1)
}
