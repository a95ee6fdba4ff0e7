package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/linemk/reseller-shop/internal/domain/models"
)

const orderCollection = "order"

// Поле документа заказа со счётчиком оставшихся скачиваний.
const remainingDownloadsField = "remaining_downloads"

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с коллекцией заказов.
type OrderStorage interface {
	// CreateOrder сохраняет заказ и возвращает присвоенный id.
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	// GetOrderByToken возвращает заказ по токену скачивания или ErrOrderNotFound.
	GetOrderByToken(ctx context.Context, token string) (*models.Order, error)
	// ConsumeDownload атомарно списывает одно скачивание заказа.
	// Возвращает false, если бюджет скачиваний уже исчерпан.
	ConsumeDownload(ctx context.Context, orderID string) (bool, error)
}

type orderRepository struct {
	store DocumentStorage
}

// NewOrderRepository создаёт репозиторий заказов поверх хранилища документов.
func NewOrderRepository(store DocumentStorage) OrderStorage {
	return &orderRepository{store: store}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	doc, err := encodeDoc(order)
	if err != nil {
		return "", fmt.Errorf("failed to encode order: %w", err)
	}
	id, err := r.store.Create(ctx, orderCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	order.ID = id
	return id, nil
}

func (r *orderRepository) GetOrderByToken(ctx context.Context, token string) (*models.Order, error) {
	docs, err := r.store.Find(ctx, orderCollection, map[string]any{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to find order by token: %w", err)
	}
	// Уникальный индекс по токену гарантирует не более одного совпадения
	if len(docs) == 0 {
		return nil, ErrOrderNotFound
	}

	doc := docs[0]
	order := &models.Order{}
	if err := decodeDoc(doc.Data, order); err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", doc.ID, err)
	}
	order.ID = doc.ID
	order.CreatedAt = doc.CreatedAt
	order.UpdatedAt = doc.UpdatedAt
	return order, nil
}

func (r *orderRepository) ConsumeDownload(ctx context.Context, orderID string) (bool, error) {
	ok, err := r.store.DecrementPositive(ctx, orderCollection, orderID, remainingDownloadsField)
	if err != nil {
		return false, fmt.Errorf("failed to consume download: %w", err)
	}
	return ok, nil
}
