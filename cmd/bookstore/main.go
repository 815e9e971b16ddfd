package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/launchpad/bookstore/internal/cache"
	"github.com/launchpad/bookstore/internal/catalog"
	"github.com/launchpad/bookstore/internal/config"
	"github.com/launchpad/bookstore/internal/database"
	"github.com/launchpad/bookstore/internal/events"
	"github.com/launchpad/bookstore/internal/httpapi"
	"github.com/launchpad/bookstore/internal/observability"
	"github.com/launchpad/bookstore/internal/orders"
	"github.com/launchpad/bookstore/internal/pkg/breaker"
	"github.com/launchpad/bookstore/internal/reporting"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	var bookCache cache.Cache
	switch cfg.Cache.Backend {
	case "memory":
		bookCache = cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
	default:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			// The cache is fail-open; start anyway and let reads fall
			// back to the store until redis comes up.
			logger.Warn("redis unreachable at startup", zap.Error(err))
		}
		defer client.Close()
		bookCache = cache.NewRedis(client)
	}

	metrics := observability.NewInmem(256)

	bookStore := database.NewBookStore(pool)
	orderStore := database.NewOrderStore(pool)

	books := catalog.New(bookStore, bookCache, cfg.Cache.TTL, logger, metrics)

	var publisher orders.Publisher
	if cfg.Kafka.Enabled() {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, breaker.New(cfg.Breaker), cfg.Retry, logger)
		defer producer.Close()
		publisher = producer
	}
	orderSvc := orders.NewService(orderStore, publisher, logger, metrics)
	reportSvc := reporting.NewService(orderStore, logger)

	server := httpapi.New(books, orderSvc, reportSvc, logger, metrics)

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
