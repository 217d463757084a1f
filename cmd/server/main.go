package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/cart"
	"github.com/yashd04xyz/LC-web/internal/catalog"
	"github.com/yashd04xyz/LC-web/internal/config"
	"github.com/yashd04xyz/LC-web/internal/domain"
	lcweb "github.com/yashd04xyz/LC-web/internal/http"
	"github.com/yashd04xyz/LC-web/internal/marketing"
	"github.com/yashd04xyz/LC-web/internal/notify"
	"github.com/yashd04xyz/LC-web/internal/orders"
	"github.com/yashd04xyz/LC-web/internal/poller"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB holds the catalog and the outreach collections.
	mongoDB, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(ctx)
	logger.Info("connected to MongoDB", zap.String("uri", cfg.MongoURI))

	// Redis holds persisted carts and the catalog listing cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	logger.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))

	catalogService := catalog.NewService(
		catalog.NewMongoRepository(mongoDB),
		catalog.NewRedisCache(redisClient),
		logger,
	)
	if count, err := catalogService.Seed(ctx); err != nil {
		logger.Warn("catalog seeding failed", zap.Error(err))
	} else if count > 0 {
		logger.Info("seeded default catalog", zap.Int("count", count))
	}

	marketingService := marketing.NewService(marketing.NewMongoRepository(mongoDB))

	notifier := notify.NewNotifier()
	notifier.Subscribe(func(cartID string, items []domain.LineItem) {
		logger.Debug("cart changed", zap.String("cart_id", cartID), zap.Int("items", len(items)))
	})
	cartStore := cart.NewStore(cart.NewRedisKV(redisClient), notifier, logger)
	cartEngine := cart.NewEngine(cartStore)

	orderRepo, err := orders.NewRepository(&orders.Credentials{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDBName,
	})
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(); err != nil {
		logger.Fatal("failed to run order migrations", zap.Error(err))
	}
	logger.Info("connected to postgres", zap.String("db", cfg.PostgresDBName))

	publisher := orders.NewKafkaPublisher(cfg.OrderTopic, cfg.KafkaBrokers...)
	defer publisher.Close()

	checkout := orders.NewCheckout(cartEngine, catalogService, orderRepo, publisher, cfg.Pricing, logger)

	cartPoller := poller.NewPoller(cartStore, logger, cfg.OrderTopic, cfg.KafkaBrokers...)
	go cartPoller.Run(ctx)
	defer cartPoller.Close()

	router := lcweb.NewRouter(
		lcweb.RouterConfig{RequestTimeout: cfg.RequestTimeout, RateLimit: cfg.RateLimit},
		lcweb.NewProductHandler(catalogService, logger),
		lcweb.NewCartHandler(cartEngine, catalogService, cfg.Pricing, logger),
		lcweb.NewOrderHandler(checkout, logger),
		lcweb.NewMarketingHandler(marketingService, logger),
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down storefront...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("storefront stopped")
}
