package main

import (
	"database/sql"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/logger"
	"github.com/jessicacaley/oo-ride-share/internal/config"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	if err := waitForDB(cfg.DBUrl, appLogger); err != nil {
		appLogger.Fatal("could not connect to the database", zap.Error(err))
	}

	m, err := migrate.New(cfg.MigrationsPath, cfg.DBUrl)
	if err != nil {
		appLogger.Fatal("could not start migrations", zap.Error(err))
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		appLogger.Fatal("migration failed", zap.Error(err))
	}

	appLogger.Info("migrations applied", zap.Bool("down", *down))
}

func waitForDB(dsn string, appLogger *zap.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for attempt := 1; attempt <= 10; attempt++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		appLogger.Info("waiting for the database", zap.Int("attempt", attempt))
		time.Sleep(3 * time.Second)
	}
	return err
}
