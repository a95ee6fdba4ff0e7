package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/reseller-shop/internal/config"
	"github.com/linemk/reseller-shop/internal/storage"
)

// maxDiagCollections ограничивает количество коллекций в диагностическом ответе.
const maxDiagCollections = 10

// DiagResponse — ответ диагностического эндпоинта /test.
type DiagResponse struct {
	Backend     string         `json:"backend"`
	Database    string         `json:"database"`
	DatabaseURL string         `json:"database_url"`
	Collections map[string]int `json:"collections"`
}

// TestHandler обрабатывает запрос GET /test: проверяет доступность БД
// и перечисляет существующие коллекции с количеством документов.
func TestHandler(log *slog.Logger, cfg *config.Config, store storage.DocumentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.TestHandler"
		logger := log.With(slog.String("op", op))

		resp := DiagResponse{
			Backend:     "running",
			Database:    "not available",
			DatabaseURL: "not set",
			Collections: map[string]int{},
		}
		if cfg.Database.URL != "" {
			resp.DatabaseURL = "set"
		}

		collections, err := store.Collections(r.Context())
		if err != nil {
			logger.Warn("database check failed", slog.Any("error", err))
		} else {
			resp.Database = "connected"
			if len(collections) > maxDiagCollections {
				collections = collections[:maxDiagCollections]
			}
			for _, name := range collections {
				count, err := store.Count(r.Context(), name)
				if err != nil {
					logger.Warn("failed to count collection", slog.String("collection", name), slog.Any("error", err))
					continue
				}
				resp.Collections[name] = count
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
