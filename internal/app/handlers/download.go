package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/reseller-shop/internal/service"
)

// DownloadHandler обрабатывает запрос GET /download/{token}.
// Списание скачивания уже зафиксировано сервисом к моменту отдачи байтов,
// сбой передачи после этого не компенсируется.
func DownloadHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DownloadHandler"
		logger := log.With(slog.String("op", op))

		token := chi.URLParam(r, "token")
		if token == "" {
			logger.Error("token parameter is missing")
			http.Error(w, "token parameter is required", http.StatusBadRequest)
			return
		}

		result, err := orderService.Download(r.Context(), token)
		if err != nil {
			logger.Warn("download rejected", slog.Any("error", err))
			status, msg := statusFromError(err)
			http.Error(w, msg, status)
			return
		}
		defer result.File.Close()

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Name))
		http.ServeContent(w, r, result.Name, result.ModTime, result.File)
	}
}
