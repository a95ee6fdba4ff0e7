package handlers

import (
	"errors"
	"net/http"

	"github.com/linemk/reseller-shop/internal/service"
	"github.com/linemk/reseller-shop/internal/storage"
)

// statusFromError отображает доменную ошибку в HTTP-статус и короткое сообщение.
// Наружу уходит только короткая строка, внутренние детали не раскрываются.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusNotFound, "invalid token"
	case errors.Is(err, service.ErrAssetNotFound):
		return http.StatusNotFound, "asset not found"
	case errors.Is(err, service.ErrAssetMissing):
		return http.StatusNotFound, "asset missing"
	case errors.Is(err, service.ErrFileNotFound):
		return http.StatusNotFound, "file not found on server"
	case errors.Is(err, service.ErrOrderNotActive):
		return http.StatusForbidden, "order not active"
	case errors.Is(err, service.ErrLinkExpired):
		return http.StatusForbidden, "link expired"
	case errors.Is(err, service.ErrDownloadsExhausted):
		return http.StatusForbidden, "no downloads left"
	case errors.Is(err, service.ErrFilePathNotSet):
		return http.StatusInternalServerError, "file path not set for asset"
	case errors.Is(err, storage.ErrStorageUnavailable):
		return http.StatusInternalServerError, "database not configured"
	}
	return http.StatusInternalServerError, "internal server error"
}
