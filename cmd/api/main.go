package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobportal-backend/config"
	_ "go-jobportal-backend/docs" // Important for Swagger
	v1 "go-jobportal-backend/internal/delivery/http/v1"
	"go-jobportal-backend/internal/repository/postgres"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/auth"
	"go-jobportal-backend/pkg/database"
	"go-jobportal-backend/pkg/email"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/redis"
	"go-jobportal-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           Job Portal Backend API
// @version         1.0
// @description     Backend for a job portal connecting seekers and providers, built with Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	logger.Log.Info("Starting job portal backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	s3Client, err := storage.NewS3Client(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("Failed to create S3 client", "error", err)
		os.Exit(1)
	}
	fileStorage := storage.NewS3Storage(s3Client, cfg)

	userRepo := postgres.NewUserRepository(dbPool)
	seekerProfileRepo := postgres.NewSeekerProfileRepository(dbPool)
	providerProfileRepo := postgres.NewProviderProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	validate := validator.New()

	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	seekerProfileUC := usecase.NewSeekerProfileUsecase(seekerProfileRepo, fileStorage)
	providerProfileUC := usecase.NewProviderProfileUsecase(providerProfileRepo, fileStorage)
	jobUC := usecase.NewJobUsecase(jobRepo, providerProfileRepo, applicationRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, seekerProfileRepo)
	dashboardUC := usecase.NewDashboardUsecase(userRepo, seekerProfileRepo, jobRepo, applicationRepo)
	adminUC := usecase.NewAdminUsecase(providerProfileRepo, jobRepo)
	contactUC := usecase.NewContactUsecase(emailService)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:            authUC,
		SeekerProfileUC:   seekerProfileUC,
		ProviderProfileUC: providerProfileUC,
		JobUC:             jobUC,
		ApplicationUC:     applicationUC,
		DashboardUC:       dashboardUC,
		AdminUC:           adminUC,
		ContactUC:         contactUC,
		Tokens:            tokens,
		Config:            cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
