package storage

import (
	"context"
	"fmt"

	"github.com/linemk/reseller-shop/internal/domain/models"
)

const supplierCollection = "supplier"

// SupplierStorage описывает методы для работы с коллекцией поставщиков.
type SupplierStorage interface {
	// ListSuppliers возвращает поставщиков, опционально отфильтрованных по категории.
	// Пустая категория означает выборку всех записей.
	ListSuppliers(ctx context.Context, category models.Category) ([]*models.Supplier, error)
	// CreateSupplier сохраняет поставщика и возвращает присвоенный id.
	CreateSupplier(ctx context.Context, supplier *models.Supplier) (string, error)
}

type supplierRepository struct {
	store DocumentStorage
}

// NewSupplierRepository создаёт репозиторий поставщиков поверх хранилища документов.
func NewSupplierRepository(store DocumentStorage) SupplierStorage {
	return &supplierRepository{store: store}
}

func (r *supplierRepository) ListSuppliers(ctx context.Context, category models.Category) ([]*models.Supplier, error) {
	filter := map[string]any{}
	if category != "" {
		filter["category"] = category
	}
	docs, err := r.store.Find(ctx, supplierCollection, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find suppliers: %w", err)
	}

	suppliers := make([]*models.Supplier, 0, len(docs))
	for _, doc := range docs {
		supplier := &models.Supplier{}
		if err := decodeDoc(doc.Data, supplier); err != nil {
			return nil, fmt.Errorf("failed to decode supplier %s: %w", doc.ID, err)
		}
		supplier.ID = doc.ID
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

func (r *supplierRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) (string, error) {
	doc, err := encodeDoc(supplier)
	if err != nil {
		return "", fmt.Errorf("failed to encode supplier: %w", err)
	}
	id, err := r.store.Create(ctx, supplierCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create supplier: %w", err)
	}
	supplier.ID = id
	return id, nil
}
