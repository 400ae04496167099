package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fleetpulse/internal/config"
	"fleetpulse/internal/consumers"
	handlers "fleetpulse/internal/handlers/shared"
	"fleetpulse/internal/middleware"
	"fleetpulse/internal/repositories/mongodb"
	"fleetpulse/internal/services"
	"fleetpulse/pkg/cache"
	"fleetpulse/pkg/database"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/messaging"
	"fleetpulse/pkg/websocket"
	"fleetpulse/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  "stdout",
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	mongo, err := database.NewMongoDB(ctx, &database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	appLogger.WithField("database", cfg.Database.Database).Info("Connected to MongoDB")

	if cfg.Database.RunMigrations {
		if err := database.NewMigrator(mongo.Database, appLogger).Up(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to run migrations")
		}
	}

	// Optional car cache
	var carCache services.CacheService
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, car cache disabled")
		} else {
			carCache = services.NewCacheService(redisCache, appLogger.WithComponent("cache"), cfg.Redis.CarTTL)
		}
	}

	// Repositories
	db := mongo.Database
	userRepo := mongodb.NewUserRepository(db)
	driverRepo := mongodb.NewDriverRepository(db)
	carRepo := mongodb.NewCarRepository(db, carCache, cfg.Redis.CarTTL)
	rsuRepo := mongodb.NewRSURepository(db)
	emergencyRepo := mongodb.NewEmergencyRepository(db)

	// Realtime
	hub := websocket.NewHub(appLogger)
	go hub.Run(ctx)
	wsHandler := websocket.NewHandler(hub, websocket.Config{
		ReadBufferSize:   cfg.WebSocket.ReadBufferSize,
		WriteBufferSize:  cfg.WebSocket.WriteBufferSize,
		HandshakeTimeout: cfg.WebSocket.HandshakeTimeout,
		PingInterval:     cfg.WebSocket.PingInterval,
		PongTimeout:      cfg.WebSocket.PongTimeout,
		SendBufferSize:   cfg.WebSocket.SendBufferSize,
		AllowedOrigins:   cfg.WebSocket.AllowedOrigins,
	}, appLogger)

	// Services
	emergencyService := services.NewEmergencyService(emergencyRepo, carRepo, hub, cfg.App.Location(), appLogger)
	driverService := services.NewDriverService(driverRepo, userRepo, carRepo, appLogger)
	carService := services.NewCarService(carRepo, driverRepo, appLogger)
	rsuService := services.NewRSUService(rsuRepo, appLogger)
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, cfg.Security.JWTAccessTokenTTL, appLogger)

	if err := authService.EnsureAdmin(ctx, cfg.Security.AdminUsername, cfg.Security.AdminPassword); err != nil {
		appLogger.WithError(err).Fatal("Failed to seed admin user")
	}
	if !cfg.Security.AuthEnabled() {
		appLogger.Warn("JWT_SECRET is empty, emergency writes are unauthenticated")
	}

	// Broker
	broker := messaging.NewRabbitMQ(messaging.Config{
		URL:            cfg.RabbitMQ.URL,
		Exchange:       cfg.RabbitMQ.Exchange,
		FailurePolicy:  messaging.FailurePolicy(cfg.RabbitMQ.FailurePolicy),
		PublishTimeout: cfg.RabbitMQ.PublishTimeout,
	}, appLogger)
	if err := broker.Connect(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to RabbitMQ")
	}

	emergencyConsumer := consumers.NewEmergencyConsumer(emergencyService, broker, messaging.ConsumeOptions{
		Queue:          cfg.RabbitMQ.EmergencyQueue,
		RoutingKeys:    cfg.RabbitMQ.RoutingKeys,
		Durable:        true,
		Prefetch:       cfg.RabbitMQ.Prefetch,
		HandlerTimeout: cfg.RabbitMQ.HandlerTimeout,
	}, appLogger)
	go emergencyConsumer.Run(ctx, cfg.RabbitMQ.ReconnectDelay)

	// Health
	checks := map[string]handlers.HealthCheck{
		"mongodb":  mongo.Ping,
		"rabbitmq": broker.Ping,
	}
	if carCache != nil {
		checks["redis"] = redisCache.Ping
	}

	// Initialize Gin router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(ctx, cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst, 10*time.Minute, appLogger))

	routes.SetupRoutes(router, &routes.Handlers{
		Emergency: handlers.NewEmergencyHandler(emergencyService),
		Driver:    handlers.NewDriverHandler(driverService),
		Car:       handlers.NewCarHandler(carService),
		RSU:       handlers.NewRSUHandler(rsuService),
		Auth:      handlers.NewAuthHandler(authService),
		Health:    handlers.NewHealthHandler(checks, 2*time.Second),
		WebSocket: wsHandler,
	}, routes.Options{
		JWTSecret:     cfg.Security.JWTSecret,
		WebSocketPath: cfg.WebSocket.Path,
	})

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}
	serverErr := make(chan error, 1)
	go func() {
		appLogger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received")
	case err := <-serverErr:
		appLogger.WithError(err).Error("HTTP server failed")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Failed to shut down HTTP server")
	}
	if err := broker.Close(); err != nil {
		appLogger.WithError(err).Error("Failed to close RabbitMQ")
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			appLogger.WithError(err).Error("Failed to close Redis")
		}
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Failed to disconnect MongoDB")
	}

	appLogger.Info("Server stopped")
}
