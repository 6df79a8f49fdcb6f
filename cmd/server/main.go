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

	"github.com/gin-gonic/gin"

	"github.com/nvtimofeev/ticketly/internal/di"
	"github.com/nvtimofeev/ticketly/internal/domain"
	"github.com/nvtimofeev/ticketly/pkg/config"
	"github.com/nvtimofeev/ticketly/pkg/database"
	"github.com/nvtimofeev/ticketly/pkg/logger"
	"github.com/nvtimofeev/ticketly/pkg/middleware"
	"github.com/nvtimofeev/ticketly/pkg/redisclient"
	"github.com/nvtimofeev/ticketly/pkg/telemetry"
)

const serviceName = "ticketly"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting ticketly...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (optional, idempotency degrades without it)
	var redisClient *redisclient.Client
	redisCfg := &redisclient.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	redisClient, err = redisclient.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed (idempotency disabled): %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
	}

	// Build dependency injection container
	container, err := di.NewContainer(&di.ContainerConfig{
		DB:     db,
		Redis:  redisClient,
		Config: cfg,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to build container: %v", err))
	}
	appLog.Info(fmt.Sprintf("Payment gateway: %s", container.Gateway.Name()))

	router := setupRouter(cfg, container)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("ticketly listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited")
}

func setupRouter(cfg *config.Config, container *di.Container) *gin.Engine {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Get()))

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(serviceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	jwtConfig := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
		},
	}
	auth := middleware.JWTMiddleware(jwtConfig)

	// Role home surfaces, each redirects mismatched roles to their own
	surfaces := router.Group("/")
	surfaces.Use(auth)
	{
		surfaces.GET("/admin", container.SurfaceHandler.Admin)
		surfaces.GET("/organizer", container.SurfaceHandler.Organizer)
		surfaces.GET("/participant", container.SurfaceHandler.Participant)
	}

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", auth, container.AuthHandler.Register)
			authRoutes.POST("/login", auth, container.AuthHandler.Login)
			authRoutes.GET("/me", auth, container.AuthHandler.Me)
		}

		orders := v1.Group("/orders")
		orders.Use(auth)
		{
			create := orders.Group("")
			if container.Redis != nil {
				create.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig(container.Redis)))
			}
			create.POST("", middleware.RequireRole(string(domain.RoleParticipant)), container.OrderHandler.Create)

			orders.GET("", middleware.RequireRole(string(domain.RoleParticipant)), container.OrderHandler.List)
			orders.POST("/cancel", container.OrderHandler.Cancel)
		}

		events := v1.Group("/events")
		events.Use(auth)
		{
			events.POST("", middleware.RequireRole(string(domain.RoleOrganizer)), container.EventHandler.Create)
			events.POST("/cancel", middleware.RequireRole(string(domain.RoleOrganizer), string(domain.RoleAdmin)), container.EventHandler.Cancel)
		}

		venues := v1.Group("/venues")
		venues.Use(auth)
		venues.Use(middleware.RequireRole(string(domain.RoleAdmin)))
		{
			venues.GET("", container.VenueHandler.List)
			venues.POST("", container.VenueHandler.Upsert)
		}

		organizers := v1.Group("/organizers")
		organizers.Use(auth)
		organizers.Use(middleware.RequireRole(string(domain.RoleAdmin)))
		{
			organizers.POST("", container.OrganizerHandler.Create)
		}
	}

	return router
}
