package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
	identityapp "github.com/gatesec/backend/internal/application/identity"
	securityapp "github.com/gatesec/backend/internal/application/security"
	"github.com/gatesec/backend/internal/infrastructure/auth"
	"github.com/gatesec/backend/internal/infrastructure/config"
	"github.com/gatesec/backend/internal/infrastructure/logger"
	"github.com/gatesec/backend/internal/infrastructure/persistence"
	"github.com/gatesec/backend/internal/infrastructure/storage"
	"github.com/gatesec/backend/internal/interfaces/http/handler"
	"github.com/gatesec/backend/internal/interfaces/http/middleware"
	"github.com/gatesec/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GateSec Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis when reachable, in-memory otherwise.
	// Single-instance deployments work fine on the in-memory fallback;
	// revocations just don't survive restarts.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
	}

	// Object storage for vehicle images and driver/visitor photos
	var objectStorage fleetapp.ObjectStorage
	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Warn("Object storage unavailable, using in-memory stub", zap.Error(err))
		objectStorage = storage.NewStubObjectStorage()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage connected", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	visitorRepo := persistence.NewGormVisitorRepository(db.DB)
	checkpointRepo := persistence.NewGormCheckpointRepository(db.DB)
	fleetTxScope := persistence.NewGormFleetTransactionScope(db.DB)
	securityTxScope := persistence.NewGormSecurityTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	vehicleService := fleetapp.NewVehicleService(vehicleRepo, objectStorage, log)
	driverService := fleetapp.NewDriverService(fleetTxScope, objectStorage, log)
	visitorService := fleetapp.NewVisitorService(visitorRepo, objectStorage, log)
	checkpointService := securityapp.NewCheckpointService(checkpointRepo, log)
	activityService := securityapp.NewActivityService(
		securityTxScope, checkpointRepo, vehicleRepo, visitorRepo, objectStorage, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	driverHandler := handler.NewDriverHandler(driverService)
	visitorHandler := handler.NewVisitorHandler(visitorService)
	checkpointHandler := handler.NewCheckpointHandler(checkpointService)
	activityHandler := handler.NewActivityHandler(activityService)
	healthHandler := handler.NewHealthHandler(db.DB, cfg.App.Name, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Routes
	r := router.New(engine, "v1")
	r.Register(
		healthHandler,
		authHandler,
		userHandler,
		vehicleHandler,
		driverHandler,
		visitorHandler,
		checkpointHandler,
		activityHandler,
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
