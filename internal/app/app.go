package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/linemk/reseller-shop/internal/config"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// NewApp создаёт новый экземпляр App и открывает подключение к БД.
// Если DATABASE_URL не задан, приложение стартует без подключения:
// операции с хранилищем будут возвращать ErrStorageUnavailable.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: log,
	}

	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL is not set, storage operations will be unavailable")
		return app, nil
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	app.DB = db
	return app, nil
}

// Close закрывает подключение к БД, если оно было открыто.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
