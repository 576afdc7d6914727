package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/cache"
	"daanbridge-backend/internal/config"
	"daanbridge-backend/internal/jobs"
	"daanbridge-backend/internal/logger"
	"daanbridge-backend/internal/repository/postgres"
	"daanbridge-backend/internal/scheduler"
	"daanbridge-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'refresh-leaderboard', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DaanBridge Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services. Each random consumer gets its own source
	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	badgeService := service.NewBadgeService(rand.New(rand.NewSource(time.Now().UnixNano())))
	scorer := service.NewVerificationScorer(time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))

	ngoService := service.NewNGOService(
		store.NGORepository,
		store.UserRepository,
		store.DonationRepository,
		scorer,
		emailService,
		audit.NewRecorder(store.AuditRepository),
	)
	leaderboardService := service.NewLeaderboardService(store.DonationRepository, badgeService, leaderboardCache)

	jobServices := &jobs.Services{
		Email:       emailService,
		NGO:         ngoService,
		Leaderboard: leaderboardService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "refresh-leaderboard":
		jobRunner.RefreshLeaderboard()
	case "send-review-reminders":
		jobRunner.SendReviewReminders()
	case "scan-fraud-alerts":
		jobRunner.ScanFraudAlerts()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - refresh-leaderboard\n")
		fmt.Printf("  - send-review-reminders\n")
		fmt.Printf("  - scan-fraud-alerts\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
