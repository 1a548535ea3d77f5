package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/application"
	"github.com/tripwise/service-travel/internal/auth"
	"github.com/tripwise/service-travel/internal/config"
	"github.com/tripwise/service-travel/internal/database"
	"github.com/tripwise/service-travel/internal/handler"
	"github.com/tripwise/service-travel/internal/health"
	"github.com/tripwise/service-travel/internal/kafka"
	"github.com/tripwise/service-travel/internal/logger"
	"github.com/tripwise/service-travel/internal/middleware"
	"github.com/tripwise/service-travel/internal/nominatim"
	"github.com/tripwise/service-travel/internal/osrm"
	"github.com/tripwise/service-travel/internal/repository"
	"github.com/tripwise/service-travel/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-travel")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-travel",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.VisitedCountryModel{},
			&repository.RouteModel{},
			&repository.PlaceModel{},
			&repository.PlaceImageModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize image storage
	imageStore, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	// Initialize repositories and provider clients
	userRepo := repository.NewGormUserRepository(db)
	routeRepo := repository.NewGormRouteRepository(db)
	placeRepo := repository.NewGormPlaceRepository(db)
	osrmClient := osrm.NewClient(cfg.OSRMURL, log)
	nominatimClient := nominatim.NewClient(cfg.NominatimURL, log)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, kafkaProducer, log)
	profileService := application.NewProfileService(userRepo, routeRepo, log)
	routeService := application.NewRouteService(routeRepo, osrmClient, kafkaProducer, log)
	locationService := application.NewLocationService(nominatimClient, log)
	placeService := application.NewPlaceService(placeRepo, imageStore, kafkaProducer, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	routeHandler := handler.NewRouteHandler(routeService)
	locationHandler := handler.NewLocationHandler(locationService)
	placeHandler := handler.NewPlaceHandler(placeService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(10, 30))

	// Serve uploaded images
	router.Static("/uploads", imageStore.BaseDir())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-travel")
	healthHandler.RegisterRoutes(router)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup)
	profileHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	routeHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	locationHandler.RegisterRoutes(&router.RouterGroup)
	placeHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-travel...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-travel stopped")
}
