package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linemk/reseller-shop/internal/domain/models"
	"github.com/linemk/reseller-shop/internal/storage"
)

const (
	// tokenBytes — количество случайных байт токена, не менее 128 бит энтропии.
	tokenBytes = 24
	// downloadTTL — срок жизни ссылки на скачивание.
	downloadTTL = 24 * time.Hour
	// defaultDownloads — стартовый бюджет скачиваний заказа.
	defaultDownloads = 3
)

// OrderService определяет интерфейс создания заказов и выдачи файлов по токену.
type OrderService interface {
	CreateOrder(ctx context.Context, email, assetID string) (*CreateOrderResult, error)
	// Download проверяет токен и открывает файл пакета.
	// Списание скачивания фиксируется в хранилище до возврата файла;
	// при сбое передачи на транспортном уровне списание не компенсируется.
	Download(ctx context.Context, token string) (*DownloadResult, error)
}

// CreateOrderResult — результат создания заказа.
type CreateOrderResult struct {
	OrderID   string
	Token     string
	ExpiresAt time.Time
}

// DownloadResult — открытый файл пакета и метаданные для отдачи клиенту.
// Закрыть файл обязан вызывающий.
type DownloadResult struct {
	File    *os.File
	Name    string
	ModTime time.Time
}

type orderService struct {
	log           *slog.Logger
	orderRepo     storage.OrderStorage
	assetRepo     storage.AssetStorage
	downloadsRoot string
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage, assetRepo storage.AssetStorage, downloadsRoot string) OrderService {
	return &orderService{
		log:           log,
		orderRepo:     orderRepo,
		assetRepo:     assetRepo,
		downloadsRoot: downloadsRoot,
	}
}

// CreateOrder создаёт заказ: проверяет существование пакета, выпускает токен,
// фиксирует срок действия и бюджет скачиваний. Оплата не подключена,
// заказ безусловно помечается как "paid".
func (s *orderService) CreateOrder(ctx context.Context, email, assetID string) (*CreateOrderResult, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.String("assetID", assetID))
	logger.Info("creating order")

	asset, err := s.assetRepo.GetAssetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			logger.Warn("asset not found")
			return nil, fmt.Errorf("%s: %w", op, ErrAssetNotFound)
		}
		logger.Error("failed to get asset", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get asset: %w", op, err)
	}

	token, err := newDownloadToken()
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	order := &models.Order{
		Email:              email,
		AssetID:            asset.ID,
		Token:              token,
		ExpiresAt:          time.Now().UTC().Add(downloadTTL),
		RemainingDownloads: defaultDownloads,
		Status:             models.StatusPaid,
	}

	orderID, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	logger.Info("order created", slog.String("orderID", orderID))
	return &CreateOrderResult{
		OrderID:   orderID,
		Token:     token,
		ExpiresAt: order.ExpiresAt,
	}, nil
}

// Download выполняет цепочку проверок заказа и открывает файл пакета.
// Проверки идут строго по порядку, каждая завершает запрос своей ошибкой.
func (s *orderService) Download(ctx context.Context, token string) (*DownloadResult, error) {
	const op = "service.OrderService.Download"
	logger := s.log.With(slog.String("op", op))

	// 1. Токен должен соответствовать ровно одному заказу
	order, err := s.orderRepo.GetOrderByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			logger.Warn("order not found by token")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		logger.Error("failed to get order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get order: %w", op, err)
	}
	logger = logger.With(slog.String("orderID", order.ID))

	// 2. Скачивание разрешено только для оплаченного заказа
	if order.Status != models.StatusPaid {
		logger.Warn("order is not active", slog.String("status", string(order.Status)))
		return nil, fmt.Errorf("%s: %w", op, ErrOrderNotActive)
	}

	// 3. Срок действия ссылки
	if !order.ExpiresAt.After(time.Now().UTC()) {
		logger.Warn("download link expired", slog.Time("expiresAt", order.ExpiresAt))
		return nil, fmt.Errorf("%s: %w", op, ErrLinkExpired)
	}

	// 4. Бюджет скачиваний
	if order.RemainingDownloads <= 0 {
		logger.Warn("downloads exhausted")
		return nil, fmt.Errorf("%s: %w", op, ErrDownloadsExhausted)
	}

	// 5. Пакет всё ещё должен существовать
	asset, err := s.assetRepo.GetAssetByID(ctx, order.AssetID)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) {
			logger.Warn("asset missing", slog.String("assetID", order.AssetID))
			return nil, fmt.Errorf("%s: %w", op, ErrAssetMissing)
		}
		logger.Error("failed to get asset", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get asset: %w", op, err)
	}

	// 6. Путь к файлу задан, не выходит за корень загрузок и указывает на обычный файл
	if asset.FilePath == "" {
		logger.Error("asset has no file path", slog.String("assetID", asset.ID))
		return nil, fmt.Errorf("%s: %w", op, ErrFilePathNotSet)
	}
	absPath, err := resolveUnderRoot(s.downloadsRoot, asset.FilePath)
	if err != nil {
		logger.Error("file path escapes downloads root", slog.String("filePath", asset.FilePath))
		return nil, fmt.Errorf("%s: %w", op, ErrFilePathNotSet)
	}
	info, err := os.Stat(absPath)
	if err != nil || !info.Mode().IsRegular() {
		logger.Warn("file not found", slog.String("path", absPath))
		return nil, fmt.Errorf("%s: %w", op, ErrFileNotFound)
	}

	// 7. Списание скачивания фиксируется до отдачи файла.
	// Условный декремент атомарен: из двух конкурентных запросов
	// на последнее скачивание пройдёт ровно один.
	ok, err := s.orderRepo.ConsumeDownload(ctx, order.ID)
	if err != nil {
		logger.Error("failed to consume download", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to consume download: %w", op, err)
	}
	if !ok {
		logger.Warn("downloads exhausted on consume")
		return nil, fmt.Errorf("%s: %w", op, ErrDownloadsExhausted)
	}

	file, err := os.Open(absPath)
	if err != nil {
		logger.Error("failed to open file", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, ErrFileNotFound)
	}

	logger.Info("download authorized", slog.String("file", filepath.Base(absPath)))
	return &DownloadResult{
		File:    file,
		Name:    filepath.Base(absPath),
		ModTime: info.ModTime(),
	}, nil
}

// newDownloadToken выпускает криптографически стойкий URL-безопасный токен.
func newDownloadToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// resolveUnderRoot разворачивает относительный путь внутри корня загрузок
// и отклоняет пути, выходящие за его пределы.
func resolveUnderRoot(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("absolute path is not allowed: %s", rel)
	}
	abs := filepath.Join(root, rel)
	relToRoot, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	if relToRoot == ".." || strings.HasPrefix(relToRoot, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes downloads root: %s", rel)
	}
	return abs, nil
}
