package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"motormarket/marketplace-service/internal/app/marketplace/config"
	"motormarket/marketplace-service/internal/app/marketplace/handler"
	"motormarket/marketplace-service/internal/app/marketplace/infrastructure/messaging"
	"motormarket/marketplace-service/internal/app/marketplace/repository"
	"motormarket/marketplace-service/internal/app/marketplace/service"
	"motormarket/marketplace-service/internal/app/marketplace/util"
	"motormarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("marketplace-service", logLevel)

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	vehicleProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.VehicleTopic)
	defer vehicleProducer.Close()
	notificationProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	defer notificationProducer.Close()
	analyticsProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.AnalyticsTopic)
	defer analyticsProducer.Close()
	logger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Msg("Initialized Kafka producers")

	vehicleRepo := repository.NewVehicleRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	vehicleService := service.NewVehicleService(vehicleRepo, redisClient, redisClient, vehicleProducer)
	moderationService := service.NewModerationService(vehicleRepo, redisClient, notificationProducer)
	favoriteService := service.NewFavoriteService(favoriteRepo, vehicleRepo)
	ratingService := service.NewRatingService(ratingRepo, vehicleRepo)
	analyticsService := service.NewAnalyticsService(analyticsProducer)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	adminHandler := handler.NewAdminHandler(moderationService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	uploadHandler := handler.NewUploadHandler(cfg.Uploads.APIKey, cfg.Uploads.APISecret)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	router := handler.SetupRoutes(
		vehicleHandler,
		adminHandler,
		favoriteHandler,
		ratingHandler,
		uploadHandler,
		analyticsHandler,
		authMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Marketplace Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Marketplace Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Marketplace Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err = mongo.Connect(ctx, clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pingCancel()

			if err = client.Ping(pingCtx, nil); err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
