package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/reseller-shop/internal/service"
)

// SeedResponse — ответ на запрос сидинга демо-данных.
type SeedResponse struct {
	Status  string              `json:"status"`
	Created *service.SeedResult `json:"created"`
}

// SeedHandler обрабатывает запрос POST /seed: наполняет пустые коллекции демо-данными.
func SeedHandler(log *slog.Logger, seedService service.SeedService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SeedHandler"
		logger := log.With(slog.String("op", op))

		result, err := seedService.Seed(r.Context())
		if err != nil {
			logger.Error("seeding failed", slog.Any("error", err))
			status, msg := statusFromError(err)
			http.Error(w, msg, status)
			return
		}

		resp := SeedResponse{Status: "ok", Created: result}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}
