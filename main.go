package main

import (
	"context"
	"log"

	"store-rating/cmd"
	"store-rating/internal/data/repository"
	"store-rating/internal/event"
	"store-rating/internal/usecase"
	"store-rating/internal/wire"
	"store-rating/pkg/database"
	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Schema applied")
	}

	repos := repository.NewRepository(db, logger)

	if err := usecase.EnsureAdmin(ctx, repos.User, config.Admin, logger); err != nil {
		logger.Fatal("Failed to bootstrap admin", zap.Error(err))
	}

	tokens := utils.NewTokenManager(config.JWT)

	publisher, err := event.New(config.AMQP, logger)
	if err != nil {
		// ratings still work without the broker
		logger.Warn("Event publisher unavailable, continuing without events", zap.Error(err))
		publisher = event.NewNoop()
	}
	defer publisher.Close()

	app := wire.Wiring(repos, db, tokens, publisher, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
