package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/albretostimbung/naraicoderbe/internal/cache"
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/router"
	"github.com/albretostimbung/naraicoderbe/pkg/config"
	"github.com/albretostimbung/naraicoderbe/pkg/database"
	"github.com/albretostimbung/naraicoderbe/pkg/jwtutil"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"go.uber.org/zap"
)

const serviceName = "naraicoderbe"

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer func() { _ = log.Sync() }()
	log.Info("Starting service", cfg.LogConfig()...)

	jwtutil.Initialize(&jwtutil.Config{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
		Issuer:          cfg.JWT.Issuer,
	})
	log.Info("JWT utilities initialized")

	prometheus.InitMetrics(cfg.Metrics.Prefix)
	log.Info("Prometheus metrics initialized", zap.String("prefix", cfg.Metrics.Prefix))

	cache.Initialize(cfg.Cache.SettingsTTL)

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(model.All()...); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database migrations completed")

	if cfg.DB.Seed {
		if err := database.Seed(context.Background(), db); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	e := router.New()

	go func() {
		port := cfg.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped")
}
