package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"homeenergy/server/config"
	"homeenergy/server/internal/api"
	"homeenergy/server/internal/auth"
	"homeenergy/server/internal/database"
	"homeenergy/server/internal/geocoding"
	"homeenergy/server/internal/prediction"
	"homeenergy/server/internal/processor"
	"homeenergy/server/internal/queue"
	"homeenergy/server/internal/views"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.Server.LogLevel).Warn("Unknown log level, using info")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	sessions, closeSessions := newSessionStore(cfg, db, logger)
	defer closeSessions()

	importQueue := queue.NewConsumptionQueue(cfg.BatchProcessing.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(db.GetDB(), importQueue, cfg, logger)
	batchProcessor.Start()
	importQueue.Start()

	homes := views.NewHomes(db, logger).WithImporter(importQueue)
	if cfg.Geocoding.Enabled {
		homes.WithGeocoder(geocoding.NewGeocoder(cfg.Geocoding.URL, cfg.Geocoding.UserAgent, logger))
	}

	predictionClient := prediction.NewClient(cfg.Prediction.URL, cfg.Prediction.Timeout, cfg.Prediction.RetryCount, logger)
	gens := views.NewGenerations()

	handler := api.NewHandler(api.Services{
		Auth:      auth.NewManager(db, sessions, cfg.Auth.SessionTTL, logger),
		Dashboard: views.NewDashboard(db, gens, logger),
		History:   views.NewHistory(db, gens, logger),
		Homes:     homes,
		Predictor: views.NewPredictor(db, predictionClient, cfg.Prediction.PlaceholderConfidence, logger),
		Health:    db,
		Imports:   importQueue,
	}, logger)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(cfg.Server.AllowedOrigins, logger)
	api.SetupRoutes(router, handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	batchProcessor.Stop()
	if err := importQueue.Close(); err != nil {
		logger.WithError(err).Error("Failed to close import queue")
	}
	logger.Info("Server exited")
}

// newSessionStore keeps sessions in redis when REDIS_ADDR is set and in
// the database otherwise.
func newSessionStore(cfg *config.Config, db *database.Database, logger *logrus.Logger) (auth.SessionStore, func()) {
	if cfg.Redis.Addr == "" {
		return auth.NewDatabaseSessionStore(db), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to redis")
	}
	logger.WithField("addr", cfg.Redis.Addr).Info("Using redis session store")

	return auth.NewRedisSessionStore(client), func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Error("Failed to close redis client")
		}
	}
}
