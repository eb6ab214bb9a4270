package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentgrid/car-rental-api/internal/cache"
	"github.com/rentgrid/car-rental-api/internal/config"
	"github.com/rentgrid/car-rental-api/internal/db"
	"github.com/rentgrid/car-rental-api/internal/logger"
	"github.com/rentgrid/car-rental-api/internal/metrics"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/routes"
	"github.com/rentgrid/car-rental-api/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.NewDB(cfg)

	driver, err := storage.NewDriver(&storage.Config{
		Driver:             cfg.StorageDriver,
		UploadsPath:        cfg.UploadsPath,
		AWSAccessKeyID:     cfg.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.AWSSecretAccessKey,
		AWSRegion:          cfg.AWSRegion,
		AWSBucket:          cfg.AWSBucket,
	})
	if err != nil {
		logger.Get().Fatal("failed to initialize storage driver", zap.Error(err))
	}
	uploader := storage.NewUploader(driver)

	// Redis is an optimization layer; the API runs without it.
	cacheClient, err := cache.NewClient(cfg)
	if err != nil {
		logger.Get().Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(logger.RequestLogger())
	r.Use(metrics.Middleware())

	if cfg.StorageDriver == "local" || cfg.StorageDriver == "" {
		r.Static("/uploads", cfg.UploadsPath)
	}

	routes.RegisterRoutes(r, database, cfg, uploader, cacheClient)

	logger.Get().Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}
