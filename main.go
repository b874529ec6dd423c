// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"smartpark/cmd"
	"smartpark/internal/data/repository"
	"smartpark/internal/notify"
	"smartpark/internal/provider"
	"smartpark/internal/usecase"
	"smartpark/internal/wire"
	"smartpark/pkg/database"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("storage", config.Storage.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the document store
	store, err := database.Open(ctx, config)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	logger.Info("Storage ready", zap.String("driver", config.Storage.Driver))

	repos := repository.NewRepository(store, logger)

	hub := notify.NewHub(logger)
	go hub.Run(ctx)

	deps := usecase.Dependencies{
		Predictor: provider.NewPredictionClient(config.Prediction, logger),
		Seeder:    usecase.NewRandomSeeder(uint64(time.Now().UnixNano())),
	}

	if config.Maps.APIKey != "" {
		deps.Places = provider.NewGooglePlaces(config.Maps, logger)
		deps.Locations = provider.NewGoogleLocationResolver(config.Maps, logger)
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set, search uses the built-in catalog")
	}

	publishers := notify.Fanout{hub}
	if config.Events.SQSQueueURL != "" {
		sqsPublisher, err := notify.NewSQSPublisher(ctx, config.Events, logger)
		if err != nil {
			logger.Error("Failed to init SQS publisher, events stay local", zap.Error(err))
		} else {
			publishers = append(publishers, sqsPublisher)
		}
	}
	deps.Publisher = publishers

	// Wire all dependencies
	app := wire.Wiring(repos, deps, hub, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}
