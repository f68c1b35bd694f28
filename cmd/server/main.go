package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safeguard/internal/config"
	handlers "safeguard/internal/handlers/shared"
	"safeguard/internal/middleware"
	"safeguard/internal/repositories/mongodb"
	"safeguard/internal/services"
	"safeguard/pkg/cache"
	"safeguard/pkg/database"
	"safeguard/pkg/logger"
	"safeguard/pkg/websocket"
	"safeguard/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
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
	defer db.Close()

	// Redis is optional: without it the repositories skip caching.
	var sosCache mongodb.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
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
		appLogger.WithError(err).Warn("Redis unavailable, running without alert cache")
	} else {
		sosCache = redisCache
		defer redisCache.Close()
	}

	// Repositories
	sosRepo := mongodb.NewSOSRepository(db.Database, sosCache)
	userRepo := mongodb.NewUserRepository(db.Database)
	contactRepo := mongodb.NewContactRepository(db.Database)
	centerRepo := mongodb.NewHelpCenterRepository(db.Database)

	// Realtime hub doubles as the alert publisher.
	wsHandler := websocket.NewHandler(&websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		PingInterval:    cfg.WebSocket.PingInterval,
		PongTimeout:     cfg.WebSocket.PongTimeout,
		AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
	})

	// Services
	matcher := services.NewMatcherService(centerRepo, cfg.SOS)
	sosService := services.NewSOSService(sosRepo, userRepo, contactRepo, matcher, wsHandler, appLogger)
	hardwareService := services.NewHardwareService(userRepo, sosService, wsHandler, appLogger)
	adminService := services.NewAdminService(sosRepo, userRepo, centerRepo)
	helpCenterService := services.NewHelpCenterService(centerRepo, matcher)

	// Handlers
	sosHandler := handlers.NewSOSHandler(sosService, appLogger)
	hardwareHandler := handlers.NewHardwareHandler(hardwareService, appLogger)
	adminHandler := handlers.NewAdminHandler(adminService, appLogger)
	helpCenterHandler := handlers.NewHelpCenterHandler(helpCenterService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupSOSRoutes(v1, sosHandler, cfg.Security.JWTSecret)
		routes.SetupHardwareRoutes(v1, hardwareHandler)
		routes.SetupAdminRoutes(v1, adminHandler, sosHandler, cfg.Security.JWTSecret)
		routes.SetupHelpCenterRoutes(v1, helpCenterHandler)
	}

	routes.SetupWebSocketRoutes(router, wsHandler, cfg.WebSocket.Path, cfg.Security.JWTSecret)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}
