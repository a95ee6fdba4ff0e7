package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/reseller-shop/internal/domain/models"
	"github.com/linemk/reseller-shop/internal/storage"
)

// CatalogService определяет интерфейс чтения каталога поставщиков и пакетов.
type CatalogService interface {
	// ListSuppliers возвращает поставщиков, пустая категория — без фильтра.
	ListSuppliers(ctx context.Context, category models.Category) ([]*models.Supplier, error)
	// ListAssets возвращает пакеты, пустая категория — без фильтра.
	ListAssets(ctx context.Context, category models.Category) ([]*models.Asset, error)
}

type catalogService struct {
	log          *slog.Logger
	supplierRepo storage.SupplierStorage
	assetRepo    storage.AssetStorage
}

func NewCatalogService(log *slog.Logger, supplierRepo storage.SupplierStorage, assetRepo storage.AssetStorage) CatalogService {
	return &catalogService{
		log:          log,
		supplierRepo: supplierRepo,
		assetRepo:    assetRepo,
	}
}

func (s *catalogService) ListSuppliers(ctx context.Context, category models.Category) ([]*models.Supplier, error) {
	const op = "service.CatalogService.ListSuppliers"
	logger := s.log.With(slog.String("op", op), slog.String("category", string(category)))

	suppliers, err := s.supplierRepo.ListSuppliers(ctx, category)
	if err != nil {
		logger.Error("failed to list suppliers", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return suppliers, nil
}

func (s *catalogService) ListAssets(ctx context.Context, category models.Category) ([]*models.Asset, error) {
	const op = "service.CatalogService.ListAssets"
	logger := s.log.With(slog.String("op", op), slog.String("category", string(category)))

	assets, err := s.assetRepo.ListAssets(ctx, category)
	if err != nil {
		logger.Error("failed to list assets", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return assets, nil
}
