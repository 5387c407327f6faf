package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/mgi25/chess/config"
	"github.com/mgi25/chess/db"
	"github.com/mgi25/chess/handlers"
	"github.com/mgi25/chess/live"
	"github.com/mgi25/chess/repositories"
	api "github.com/mgi25/chess/routes"
	"github.com/mgi25/chess/services"
	"github.com/mgi25/chess/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Схема и стартовые данные
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()
	if err := db.Migrate(startupCtx, dbConn); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Seed(startupCtx, dbConn); err != nil {
		logger.Error("failed to seed database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema ready")

	// Инициализация загрузчика файлов (Cloudflare R2). Блок опционален:
	// без него выгрузка снапшотов просто отключена.
	var uploader storage.SnapshotUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("object storage not configured, snapshot uploads disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	logger.Info("Repositories initialized")

	tournamentCount, err := tournamentRepo.Count(startupCtx)
	if err != nil {
		logger.Error("failed to count tournaments", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("tournaments registered", slog.Int("count", tournamentCount))

	// Инициализация сервисов
	leagueService := services.NewLeagueService(
		dbConn, // For transaction management
		tournamentRepo,
		playerRepo,
		roundRepo,
		wsHub,
		logger,
	)
	exportService := services.NewExportService(leagueService, uploader, logger)
	logger.Info("Services initialized")

	// Запуск планировщика периодической выгрузки снапшотов
	if cfg.SnapshotInterval > 0 && uploader != nil {
		go runSnapshotScheduler(cfg.SnapshotInterval, tournamentRepo, exportService, logger)
	}

	// Инициализация обработчиков HTTP
	leagueHandler := handlers.NewLeagueHandler(leagueService)
	exportHandler := handlers.NewExportHandler(exportService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		leagueHandler,
		exportHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			// If shutdown fails, force close.
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// runSnapshotScheduler периодически выгружает CSV-снапшоты всех турниров
// в объектное хранилище.
func runSnapshotScheduler(
	interval time.Duration,
	tournamentRepo repositories.TournamentRepository,
	exportService services.ExportService,
	logger *slog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("snapshot scheduler started", slog.Duration("interval", interval))

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		ids, err := tournamentRepo.ListIDs(ctx)
		if err != nil {
			logger.Error("scheduler: failed to list tournaments", slog.Any("error", err))
			cancel()
			continue
		}
		for _, id := range ids {
			if _, err := exportService.UploadSnapshot(ctx, id); err != nil {
				logger.Error("scheduler: snapshot upload failed",
					slog.Int("tournament_id", id), slog.Any("error", err))
			}
		}
		cancel()
	}
}
