package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/linemk/reseller-shop/internal/domain/models"
)

const assetCollection = "asset"

var ErrAssetNotFound = errors.New("asset not found")

// AssetStorage описывает методы для работы с коллекцией пакетов.
type AssetStorage interface {
	// ListAssets возвращает пакеты, опционально отфильтрованные по категории.
	ListAssets(ctx context.Context, category models.Category) ([]*models.Asset, error)
	// GetAssetByID возвращает пакет по id или ErrAssetNotFound.
	GetAssetByID(ctx context.Context, id string) (*models.Asset, error)
	// CreateAsset сохраняет пакет и возвращает присвоенный id.
	CreateAsset(ctx context.Context, asset *models.Asset) (string, error)
}

type assetRepository struct {
	store DocumentStorage
}

// NewAssetRepository создаёт репозиторий пакетов поверх хранилища документов.
func NewAssetRepository(store DocumentStorage) AssetStorage {
	return &assetRepository{store: store}
}

func (r *assetRepository) ListAssets(ctx context.Context, category models.Category) ([]*models.Asset, error) {
	filter := map[string]any{}
	if category != "" {
		filter["category"] = category
	}
	docs, err := r.store.Find(ctx, assetCollection, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find assets: %w", err)
	}

	assets := make([]*models.Asset, 0, len(docs))
	for _, doc := range docs {
		asset := &models.Asset{}
		if err := decodeDoc(doc.Data, asset); err != nil {
			return nil, fmt.Errorf("failed to decode asset %s: %w", doc.ID, err)
		}
		asset.ID = doc.ID
		assets = append(assets, asset)
	}
	return assets, nil
}

func (r *assetRepository) GetAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	doc, err := r.store.GetByID(ctx, assetCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	asset := &models.Asset{}
	if err := decodeDoc(doc.Data, asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", doc.ID, err)
	}
	asset.ID = doc.ID
	return asset, nil
}

func (r *assetRepository) CreateAsset(ctx context.Context, asset *models.Asset) (string, error) {
	doc, err := encodeDoc(asset)
	if err != nil {
		return "", fmt.Errorf("failed to encode asset: %w", err)
	}
	id, err := r.store.Create(ctx, assetCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create asset: %w", err)
	}
	asset.ID = id
	return id, nil
}
