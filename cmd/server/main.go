package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "daanbridge-backend/internal/api/http"
	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/cache"
	"daanbridge-backend/internal/config"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/obs"
	"daanbridge-backend/internal/repository/postgres"
	"daanbridge-backend/internal/security"
	"daanbridge-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DaanBridge Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize leaderboard cache
	leaderboardCache := cache.NewLeaderboardCache(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second,
	)
	defer leaderboardCache.Close()
	if err := leaderboardCache.Ping(context.Background()); err != nil {
		logger.Warn("Redis unavailable, leaderboard cache disabled", "error", err)
	} else {
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
	}

	// Initialize metrics
	obs.Init()

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services. Each random consumer gets its own source; the
	// services serialize access internally
	badgeSvc := service.NewBadgeService(rand.New(rand.NewSource(time.Now().UnixNano())))
	scorer := service.NewVerificationScorer(time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
	auditRecorder := audit.NewRecorder(store.AuditRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.DonationRepository)
	ngoSvc := service.NewNGOService(store.NGORepository, store.UserRepository, store.DonationRepository, scorer, emailSvc, auditRecorder)
	projectSvc := service.NewProjectService(store.ProjectRepository, store.NGORepository)
	donationSvc := service.NewDonationService(
		store.DonationRepository,
		store.ProjectRepository,
		store.NGORepository,
		store.UserRepository,
		store.NotificationRepository,
		badgeSvc,
		scorer,
		emailSvc,
		auditRecorder,
		cfg.Payment.WebhookSecret,
	)
	leaderboardSvc := service.NewLeaderboardService(store.DonationRepository, badgeSvc, leaderboardCache)
	certificateSvc := service.NewCertificateService(
		store.DonationRepository,
		store.UserRepository,
		store.NGORepository,
		store.ProjectRepository,
		emailSvc,
	)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)
	auditSvc := service.NewAuditService(store.AuditRepository)

	// Build the route table
	router := httpapi.NewRouter(cfg, httpapi.Services{
		Auth:         authSvc,
		User:         userSvc,
		NGO:          ngoSvc,
		Project:      projectSvc,
		Donation:     donationSvc,
		Leaderboard:  leaderboardSvc,
		Certificate:  certificateSvc,
		Notification: notificationSvc,
		Audit:        auditSvc,
		Badge:        badgeSvc,
		TokenManager: tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
