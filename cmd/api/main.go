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

	"github.com/kengni1234/kengni-finance-v2/internal/config"
	delivery "github.com/kengni1234/kengni-finance-v2/internal/delivery/http"
	_ "github.com/kengni1234/kengni-finance-v2/internal/docs"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
	"github.com/kengni1234/kengni-finance-v2/pkg/postgres"
	"github.com/kengni1234/kengni-finance-v2/pkg/redis"
	"github.com/kengni1234/kengni-finance-v2/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the finance API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Finance API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize Telegram notifier
	var notifier telegram.Notifier = telegram.NoopNotifier{}
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	tradeRepo := repository.NewTradeRepository(db.DB)
	positionRepo := repository.NewPositionRepository(db.DB)
	journalRepo := repository.NewJournalRepository(db.DB)
	patternRepo := repository.NewPatternRepository(db.DB)
	scoreRepo := repository.NewScoreRepository(db.DB)
	transactionRepo := repository.NewFinancialTransactionRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)
	insightRepo := repository.NewInsightRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)

	// Initialize services
	scoreCacheTTL, err := time.ParseDuration(cfg.Analysis.ScoreCacheTTL)
	if err != nil {
		appLogger.Fatal("Invalid score cache TTL", logger.ErrorField(err))
	}
	detectorSvc := service.NewPatternDetector(cfg.Analysis.Detector, appLogger,
		tradeRepo, journalRepo, patternRepo, notifier)
	scoreSvc := service.NewTraderScore(cfg.Analysis.Scoring, appLogger,
		tradeRepo, positionRepo, patternRepo, scoreRepo, redisClient, scoreCacheTTL)
	assistantSvc := service.NewAssistant(appLogger, tradeRepo, scoreSvc, detectorSvc)
	tradingSvc := service.NewTrading(appLogger, tradeRepo, positionRepo, notificationRepo, notifier)
	financeSvc := service.NewFinance(appLogger, transactionRepo, reportRepo,
		insightRepo, notificationRepo, service.NewReportAnalyzer(), notifier)
	journalSvc := service.NewJournal(appLogger, journalRepo)
	notificationSvc := service.NewNotification(appLogger, notificationRepo)

	// Schedule the daily score snapshot
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Analysis.SnapshotSchedule, func() {
		scoreSvc.SnapshotAll(ctx)
	}); err != nil {
		appLogger.Fatal("Invalid snapshot schedule", logger.ErrorField(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")
	delivery.NewTradeHandler(tradingSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewJournalHandler(journalSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewFinanceHandler(financeSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewAnalysisHandler(detectorSvc, scoreSvc, financeSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewAssistantHandler(assistantSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewNotificationHandler(notificationSvc, appLogger).RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Kengni Finance API
// @version 1.0
// @description Trading journal, personal finance and behavioral analysis API.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api CLI: %s\n", err)
		os.Exit(1)
	}
}
