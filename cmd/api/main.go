package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ats-backend/config"
	_ "ats-backend/docs" // Important for Swagger
	v1 "ats-backend/internal/delivery/http/v1"
	"ats-backend/internal/repository/postgres"
	"ats-backend/internal/usecase"
	"ats-backend/pkg/database"
	"ats-backend/pkg/logger"
	"ats-backend/pkg/redis"
)

// @title           ATS Candidate Intake API
// @version         1.0
// @description     Collects and lists job-candidate submissions with optional CV upload.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting candidate intake backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Log.Info("Database connection established")

	// 4. Setup Redis (rate limiter backend; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
	}
	defer redis.Close()

	// 5. Upload directory must exist before the first CV is written.
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Log.Error("Failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// 6. Setup Repository and UseCase
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, cfg.UploadDir)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		Config:      cfg,
	})

	// 8. Start Server
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
