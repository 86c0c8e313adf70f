package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/velora-live/velora/db"
	"github.com/velora-live/velora/internal/auth"
	"github.com/velora-live/velora/internal/config"
	"github.com/velora-live/velora/internal/router"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)

	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		logger.Fatal("jwt secret", zap.Error(err))
	}

	conn, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}

	if err := db.Migrate(conn); err != nil {
		logger.Fatal("database migrate", zap.Error(err))
	}

	r := router.NewRouter(conn, logger, cfg)

	logger.Info("starting server", zap.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err == nil {
		zapCfg.Level = lvl
	}

	return zapCfg.Build()
}
