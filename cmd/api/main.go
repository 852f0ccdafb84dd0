package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/handler"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/logger"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/messaging/kafka"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/storage/csvfile"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/storage/postgres"
	redis_adapter "github.com/jessicacaley/oo-ride-share/internal/adapter/storage/redis"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/websocket"
	"github.com/jessicacaley/oo-ride-share/internal/config"
	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	"github.com/jessicacaley/oo-ride-share/internal/core/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	src, closeSource := entitySource(ctx, cfg, appLogger)
	defer closeSource()

	opts := []service.Option{service.WithLogger(appLogger)}
	publisher, publisherCloser := tripPublisher(ctx, cfg, appLogger)
	defer publisherCloser.Close()
	if publisher != nil {
		opts = append(opts, service.WithPublisher(publisher))
	}

	dispatcher, err := service.NewDispatcher(ctx, src, opts...)
	if err != nil {
		appLogger.Fatal("unable to load ride share data", zap.Error(err))
	}

	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	hub, _ := publisher.(*websocket.Hub)
	r := handler.NewRouter(cfg.Env, appLogger, dispatcher, authSvc, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		appLogger.Info("starting server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("server exiting")
}

func entitySource(ctx context.Context, cfg config.Config, appLogger *zap.Logger) (port.EntitySource, func()) {
	if cfg.DataSource == config.SourceCSV {
		appLogger.Info("loading csv data", zap.String("dir", cfg.DataDir))
		return csvfile.NewSource(cfg.DataDir), func() {}
	}

	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		appLogger.Fatal("unable to parse db config", zap.Error(err))
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		appLogger.Fatal("unable to create db pool", zap.Error(err))
	}

	if err := pool.Ping(ctx); err != nil {
		appLogger.Fatal("cannot connect to db", zap.Error(err))
	}

	appLogger.Info("connected to database via pgxpool")
	return postgres.New(pool), pool.Close
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func tripPublisher(ctx context.Context, cfg config.Config, appLogger *zap.Logger) (port.TripPublisher, io.Closer) {
	switch cfg.EventSink {
	case config.SinkRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			appLogger.Fatal("unable to parse redis url", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLogger.Fatal("cannot connect to redis", zap.Error(err))
		}
		appLogger.Info("publishing trip events to redis", zap.String("channel", cfg.RedisChannel))
		return redis_adapter.NewTripPublisher(rdb, cfg.RedisChannel), rdb
	case config.SinkKafka:
		pub := kafka.NewTripPublisher(cfg.Brokers(), cfg.KafkaTopic)
		appLogger.Info("publishing trip events to kafka", zap.Strings("brokers", cfg.Brokers()))
		return pub, pub
	case config.SinkWebsocket:
		hub := websocket.NewHub(appLogger)
		go hub.Run()
		appLogger.Info("pushing trip events to websocket subscribers")
		return hub, hub
	default:
		return nil, nopCloser{}
	}
}
