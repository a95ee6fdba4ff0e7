package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RootResponse — ответ на запрос живости сервиса.
type RootResponse struct {
	Message string `json:"message"`
}

// RootHandler обрабатывает запрос GET / и подтверждает, что сервис запущен.
func RootHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RootHandler"

		resp := RootResponse{Message: "Reseller Backend Running"}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode response", slog.String("op", op), slog.Any("error", err))
		}
	}
}
