package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/doublemix/msche-team-visit/internal/handlers"
	"github.com/doublemix/msche-team-visit/internal/repository"
	"github.com/doublemix/msche-team-visit/internal/service"
	"github.com/doublemix/msche-team-visit/internal/service/browse"
	"github.com/doublemix/msche-team-visit/internal/service/importer"
	"github.com/doublemix/msche-team-visit/pkg/database"
	"github.com/doublemix/msche-team-visit/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	db, err := database.NewPostgresDB(database.ConfigFromEnv(), logger)
	if err != nil {
		logger.Error("failed to initialize db", "error", err.Error())
		os.Exit(1)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logger.Error("migration driver error", slog.Any("error", err))
		os.Exit(1)
	}
	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		logger.Error("migrate init error", slog.Any("error", err))
		os.Exit(1)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("migration error", slog.Any("error", err))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error occurred on closing database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed gracefully")
		}
	}()

	dbInstance := database.NewDB(db)
	txManager, err := database.NewTransactionManager(db)
	if err != nil {
		logger.Error("error creating transaction manager", slog.Any("error", err))
		os.Exit(1)
	}

	zoomRoomRepo := repository.NewZoomRoomRepository(dbInstance)
	meetingRepo := repository.NewMeetingRepository(dbInstance)
	participantRepo := repository.NewParticipantRepository(dbInstance)

	services := &service.Services{
		ImporterService: importer.NewImporterService(zoomRoomRepo, meetingRepo, participantRepo, txManager, logger),
		BrowseService:   browse.NewBrowseService(meetingRepo, participantRepo, zoomRoomRepo, logger),
	}

	handler := handlers.NewHandler(services, logger)

	srv := new(server.Server)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.Run(os.Getenv("SERVER_PORT"), handler.InitRoutes()); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logger.Info("gracefully shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("error occurred on server shutting down", slog.Any("error", err))
		}

		logger.Info("server stopped gracefully")
	case err := <-serverErrors:
		logger.Error("error occurred while running server", slog.Any("error", err))
		os.Exit(1)
	}
}
