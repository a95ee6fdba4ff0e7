package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/reseller-shop/internal/app/handlers"
	"github.com/linemk/reseller-shop/internal/config"
	"github.com/linemk/reseller-shop/internal/domain/models"
	"github.com/linemk/reseller-shop/internal/service"
	"github.com/linemk/reseller-shop/internal/storage"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

type fakeOrderService struct {
	createResult *service.CreateOrderResult
	createErr    error
	downloadFn   func(ctx context.Context, token string) (*service.DownloadResult, error)
}

var _ service.OrderService = (*fakeOrderService)(nil)

func (f *fakeOrderService) CreateOrder(ctx context.Context, email, assetID string) (*service.CreateOrderResult, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeOrderService) Download(ctx context.Context, token string) (*service.DownloadResult, error) {
	return f.downloadFn(ctx, token)
}

type fakeCatalogService struct {
	suppliers []*models.Supplier
	assets    []*models.Asset
	err       error
}

var _ service.CatalogService = (*fakeCatalogService)(nil)

func (f *fakeCatalogService) ListSuppliers(ctx context.Context, category models.Category) ([]*models.Supplier, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Supplier
	for _, s := range f.suppliers {
		if category == "" || s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalogService) ListAssets(ctx context.Context, category models.Category) ([]*models.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Asset
	for _, a := range f.assets {
		if category == "" || a.Category == category {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSeedService struct {
	result *service.SeedResult
	err    error
}

var _ service.SeedService = (*fakeSeedService)(nil)

func (f *fakeSeedService) Seed(ctx context.Context) (*service.SeedResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeDiagStore реализует DocumentStorage для диагностического эндпоинта.
type fakeDiagStore struct {
	collections []string
	counts      map[string]int
	err         error
}

var _ storage.DocumentStorage = (*fakeDiagStore)(nil)

func (f *fakeDiagStore) Create(ctx context.Context, collection string, doc map[string]any) (string, error) {
	return "", f.err
}

func (f *fakeDiagStore) Find(ctx context.Context, collection string, filter map[string]any) ([]storage.Document, error) {
	return nil, f.err
}

func (f *fakeDiagStore) GetByID(ctx context.Context, collection, id string) (*storage.Document, error) {
	return nil, f.err
}

func (f *fakeDiagStore) DecrementPositive(ctx context.Context, collection, id, field string) (bool, error) {
	return false, f.err
}

func (f *fakeDiagStore) Count(ctx context.Context, collection string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[collection], nil
}

func (f *fakeDiagStore) Collections(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.collections, nil
}

func TestRootHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handlers.RootHandler(testLogger()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.RootResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Reseller Backend Running", resp.Message)
}

func TestCreateOrderHandler_Success(t *testing.T) {
	expiresAt := time.Now().UTC().Add(24 * time.Hour)
	svc := &fakeOrderService{
		createResult: &service.CreateOrderResult{
			OrderID:   "order-1",
			Token:     "download-token",
			ExpiresAt: expiresAt,
		},
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","asset_id":"asset-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rr := httptest.NewRecorder()

	handlers.CreateOrderHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.CreateOrderResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "order-1", resp.OrderID)
	assert.Equal(t, "download-token", resp.DownloadToken)
	assert.True(t, resp.ExpiresAt.Equal(expiresAt))
}

func TestCreateOrderHandler_InvalidJSON(t *testing.T) {
	svc := &fakeOrderService{}
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`not-json`))
	rr := httptest.NewRecorder()

	handlers.CreateOrderHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateOrderHandler_ValidationError(t *testing.T) {
	svc := &fakeOrderService{}

	// email обязателен и должен быть валидным
	cases := []string{
		`{"asset_id":"asset-1"}`,
		`{"email":"not-an-email","asset_id":"asset-1"}`,
		`{"email":"a@b.com"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		handlers.CreateOrderHandler(testLogger(), svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
	}
}

func TestCreateOrderHandler_AssetNotFound(t *testing.T) {
	svc := &fakeOrderService{
		createErr: fmt.Errorf("service.OrderService.CreateOrder: %w", service.ErrAssetNotFound),
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","asset_id":"missing"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rr := httptest.NewRecorder()

	handlers.CreateOrderHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateOrderHandler_StorageUnavailable(t *testing.T) {
	svc := &fakeOrderService{
		createErr: fmt.Errorf("service.OrderService.CreateOrder: %w", storage.ErrStorageUnavailable),
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","asset_id":"asset-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rr := httptest.NewRecorder()

	handlers.CreateOrderHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// downloadRouter монтирует хендлер в chi, чтобы работал URLParam.
func downloadRouter(svc service.OrderService) http.Handler {
	router := chi.NewRouter()
	router.Get("/download/{token}", handlers.DownloadHandler(testLogger(), svc))
	return router
}

func TestDownloadHandler_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.pdf")
	assert.NoError(t, os.WriteFile(path, []byte("pdf-bytes"), 0o644))

	svc := &fakeOrderService{
		downloadFn: func(ctx context.Context, token string) (*service.DownloadResult, error) {
			file, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			info, _ := file.Stat()
			return &service.DownloadResult{File: file, Name: "pack.pdf", ModTime: info.ModTime()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/download/good-token", nil)
	rr := httptest.NewRecorder()
	downloadRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="pack.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "pdf-bytes", rr.Body.String())
}

func TestDownloadHandler_InvalidToken(t *testing.T) {
	svc := &fakeOrderService{
		downloadFn: func(ctx context.Context, token string) (*service.DownloadResult, error) {
			return nil, fmt.Errorf("service.OrderService.Download: %w", service.ErrInvalidToken)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/download/bad-token", nil)
	rr := httptest.NewRecorder()
	downloadRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDownloadHandler_ForbiddenStates(t *testing.T) {
	// Истёкшая ссылка, неактивный заказ и исчерпанный бюджет дают 403
	forbidden := []error{
		service.ErrLinkExpired,
		service.ErrOrderNotActive,
		service.ErrDownloadsExhausted,
	}
	for _, sentinel := range forbidden {
		sentinel := sentinel
		svc := &fakeOrderService{
			downloadFn: func(ctx context.Context, token string) (*service.DownloadResult, error) {
				return nil, fmt.Errorf("service.OrderService.Download: %w", sentinel)
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/download/some-token", nil)
		rr := httptest.NewRecorder()
		downloadRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "error: %v", sentinel)
	}
}

func TestDownloadHandler_FilePathNotSet(t *testing.T) {
	svc := &fakeOrderService{
		downloadFn: func(ctx context.Context, token string) (*service.DownloadResult, error) {
			return nil, fmt.Errorf("service.OrderService.Download: %w", service.ErrFilePathNotSet)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/download/some-token", nil)
	rr := httptest.NewRecorder()
	downloadRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSuppliersHandler_Success(t *testing.T) {
	svc := &fakeCatalogService{
		suppliers: []*models.Supplier{
			{ID: "s1", Name: "AromaHub", Category: models.CategoryPerfumes, Rating: 4.8},
			{ID: "s2", Name: "SneakSupply", Category: models.CategoryShoes, Rating: 4.6},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/suppliers?category=shoes", nil)
	rr := httptest.NewRecorder()
	handlers.SuppliersHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var suppliers []*models.Supplier
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &suppliers))
	assert.Len(t, suppliers, 1)
	assert.Equal(t, "SneakSupply", suppliers[0].Name)
}

func TestSuppliersHandler_UnknownCategory(t *testing.T) {
	svc := &fakeCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/suppliers?category=furniture", nil)
	rr := httptest.NewRecorder()
	handlers.SuppliersHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSuppliersHandler_EmptyListIsArray(t *testing.T) {
	svc := &fakeCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	rr := httptest.NewRecorder()
	handlers.SuppliersHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	// Пустой каталог сериализуется как [], а не null
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestAssetsHandler_Success(t *testing.T) {
	svc := &fakeCatalogService{
		assets: []*models.Asset{
			{ID: "a1", Title: "Perfume Pack", Category: models.CategoryPerfumes, Price: 9.99},
			{ID: "a2", Title: "Mega Bundle", Category: models.CategoryMixed, Price: 49.99},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	rr := httptest.NewRecorder()
	handlers.AssetsHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var assets []*models.Asset
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &assets))
	assert.Len(t, assets, 2)
}

func TestAssetsHandler_UnknownCategory(t *testing.T) {
	svc := &fakeCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/assets?category=unknown", nil)
	rr := httptest.NewRecorder()
	handlers.AssetsHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSeedHandler_Success(t *testing.T) {
	svc := &fakeSeedService{
		result: &service.SeedResult{Suppliers: 4, Assets: 5},
	}

	req := httptest.NewRequest(http.MethodPost, "/seed", nil)
	rr := httptest.NewRecorder()
	handlers.SeedHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.SeedResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 4, resp.Created.Suppliers)
	assert.Equal(t, 5, resp.Created.Assets)
}

func TestSeedHandler_StorageUnavailable(t *testing.T) {
	svc := &fakeSeedService{
		err: fmt.Errorf("service.SeedService.Seed: %w", storage.ErrStorageUnavailable),
	}

	req := httptest.NewRequest(http.MethodPost, "/seed", nil)
	rr := httptest.NewRecorder()
	handlers.SeedHandler(testLogger(), svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTestHandler_Connected(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.URL = "postgres://localhost:5432/shop"
	store := &fakeDiagStore{
		collections: []string{"asset", "order", "supplier"},
		counts:      map[string]int{"asset": 5, "order": 2, "supplier": 4},
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	handlers.TestHandler(testLogger(), cfg, store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.DiagResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp.Backend)
	assert.Equal(t, "connected", resp.Database)
	assert.Equal(t, "set", resp.DatabaseURL)
	assert.Equal(t, map[string]int{"asset": 5, "order": 2, "supplier": 4}, resp.Collections)
}

func TestTestHandler_DatabaseUnavailable(t *testing.T) {
	cfg := &config.Config{}
	store := &fakeDiagStore{err: storage.ErrStorageUnavailable}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	handlers.TestHandler(testLogger(), cfg, store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp handlers.DiagResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp.Backend)
	assert.Equal(t, "not available", resp.Database)
	assert.Equal(t, "not set", resp.DatabaseURL)
	assert.Empty(t, resp.Collections)
}
