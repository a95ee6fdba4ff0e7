package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/reseller-shop/internal/domain/models"
	"github.com/linemk/reseller-shop/internal/service"
)

// parseCategoryParam извлекает необязательный query-параметр category.
// Неизвестное значение категории отклоняется на границе API.
func parseCategoryParam(r *http.Request) (models.Category, bool) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return "", true
	}
	category, err := models.ParseCategory(raw)
	if err != nil {
		return "", false
	}
	return category, true
}

// SuppliersHandler обрабатывает запрос GET /suppliers?category=
func SuppliersHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SuppliersHandler"
		logger := log.With(slog.String("op", op))

		category, ok := parseCategoryParam(r)
		if !ok {
			logger.Warn("unknown category", slog.String("category", r.URL.Query().Get("category")))
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		suppliers, err := catalogService.ListSuppliers(r.Context(), category)
		if err != nil {
			logger.Error("failed to list suppliers", slog.Any("error", err))
			status, msg := statusFromError(err)
			http.Error(w, msg, status)
			return
		}
		if suppliers == nil {
			suppliers = []*models.Supplier{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(suppliers); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}

// AssetsHandler обрабатывает запрос GET /assets?category=
func AssetsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AssetsHandler"
		logger := log.With(slog.String("op", op))

		category, ok := parseCategoryParam(r)
		if !ok {
			logger.Warn("unknown category", slog.String("category", r.URL.Query().Get("category")))
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		assets, err := catalogService.ListAssets(r.Context(), category)
		if err != nil {
			logger.Error("failed to list assets", slog.Any("error", err))
			status, msg := statusFromError(err)
			http.Error(w, msg, status)
			return
		}
		if assets == nil {
			assets = []*models.Asset{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(assets); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}
