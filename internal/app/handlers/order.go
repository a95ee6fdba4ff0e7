package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/reseller-shop/internal/service"
)

// CreateOrderRequest представляет тело запроса на создание заказа с тегами валидации
type CreateOrderRequest struct {
	Email   string `json:"email" validate:"required,email"`
	AssetID string `json:"asset_id" validate:"required"`
}

// CreateOrderResponse — ответ с идентификатором заказа и токеном скачивания.
type CreateOrderResponse struct {
	OrderID       string    `json:"order_id"`
	DownloadToken string    `json:"download_token"`
	ExpiresAt     time.Time `json:"expires_at"`
}

var validate = validator.New()

// CreateOrderHandler обрабатывает запрос POST /orders.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		result, err := orderService.CreateOrder(r.Context(), req.Email, req.AssetID)
		if err != nil {
			logger.Error("failed to create order", slog.Any("error", err))
			status, msg := statusFromError(err)
			http.Error(w, msg, status)
			return
		}

		resp := CreateOrderResponse{
			OrderID:       result.OrderID,
			DownloadToken: result.Token,
			ExpiresAt:     result.ExpiresAt,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}
