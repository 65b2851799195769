package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
}

// ConfigFromEnv reads the connection settings both binaries share.
func ConfigFromEnv() Config {
	return Config{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		Username: os.Getenv("POSTGRES_USERNAME"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSL"),
	}
}

func NewPostgresDB(cfg Config, logger *slog.Logger) (*sql.DB, error) {
	connection := fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DBName, cfg.Password, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connection)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		return nil, err
	}

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", slog.Any("error", err))
		return nil, err
	}

	return db, nil
}
