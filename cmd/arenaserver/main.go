// Package main provides the arena server binary that drains the match
// queue against PostgreSQL-backed characters.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/arena"
	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/server"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	tables := tuning.Default()
	if cfg.Arena.TuningFile != "" {
		tables, err = tuning.LoadFromFile(cfg.Arena.TuningFile)
		if err != nil {
			logger.Fatal("loading tuning tables", zap.Error(err))
		}
		logger.Info("tuning overrides applied", zap.String("file", cfg.Arena.TuningFile))
	}

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	svc := arena.NewService(
		postgres.NewCharacterRepository(pool.DB()),
		postgres.NewEquipmentRepository(pool.DB()),
		postgres.NewMaterialRepository(pool.DB()),
		postgres.NewMatchRepository(pool.DB()),
		tables,
		rng.NewCryptoSource(),
		observability.ForComponent(logger, "arena"),
	)
	queue := arena.NewQueue(svc, observability.ForComponent(logger, "match-queue"), cfg.Arena.Workers, cfg.Arena.QueueSize)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("match-queue", queue)
	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			for {
				time.Sleep(30 * time.Second)
				if err := pool.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			pool.Close()
		},
	})

	logger.Info("arena server initialized",
		zap.Int("workers", cfg.Arena.Workers),
		zap.Int("queue_size", cfg.Arena.QueueSize),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
