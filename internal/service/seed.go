package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/reseller-shop/internal/domain/models"
	"github.com/linemk/reseller-shop/internal/storage"
)

// SeedService определяет интерфейс наполнения пустых коллекций демо-данными.
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

// SeedResult — количество созданных записей по коллекциям.
type SeedResult struct {
	Suppliers int `json:"suppliers"`
	Assets    int `json:"assets"`
}

type seedService struct {
	log          *slog.Logger
	supplierRepo storage.SupplierStorage
	assetRepo    storage.AssetStorage
}

func NewSeedService(log *slog.Logger, supplierRepo storage.SupplierStorage, assetRepo storage.AssetStorage) SeedService {
	return &seedService{
		log:          log,
		supplierRepo: supplierRepo,
		assetRepo:    assetRepo,
	}
}

var seedValidate = validator.New()

// demoSuppliers — демо-поставщики для первого запуска.
var demoSuppliers = []models.Supplier{
	{Name: "AromaHub", Category: models.CategoryPerfumes, Rating: 4.8, Description: "Bulk niche fragrances"},
	{Name: "SneakSupply", Category: models.CategoryShoes, Rating: 4.6, Description: "Footwear B2B drops"},
	{Name: "WearWave", Category: models.CategoryApparel, Rating: 4.5, Description: "Streetwear & basics"},
	{Name: "ElectraDepot", Category: models.CategoryElectronics, Rating: 4.7, Description: "Gadgets & accessories"},
}

// demoAssets — демо-пакеты для первого запуска.
var demoAssets = []models.Asset{
	{
		Title:         "Perfume Reseller Pack 2025",
		Category:      models.CategoryPerfumes,
		SupplierNames: []string{"AromaHub"},
		Description:   "Verified perfume suppliers, pricing sheets, outreach scripts",
		Price:         9.99,
		FilePath:      "downloads/perfume-pack-2025.pdf",
		CoverImage:    "https://images.unsplash.com/photo-1541643600914-78b084683601?q=80&w=1200&auto=format&fit=crop",
	},
	{
		Title:         "Sneaker Plug Directory 2025",
		Category:      models.CategoryShoes,
		SupplierNames: []string{"SneakSupply"},
		Description:   "Top-tier sneaker wholesalers + import guide",
		Price:         9.99,
		FilePath:      "downloads/sneaker-plug-2025.pdf",
		CoverImage:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1200&auto=format&fit=crop",
	},
	{
		Title:         "Apparel Supplier Pack 2025",
		Category:      models.CategoryApparel,
		SupplierNames: []string{"WearWave"},
		Description:   "Streetwear, basics e private label: contatti diretti e listini",
		Price:         9.99,
		FilePath:      "downloads/apparel-pack-2025.pdf",
		CoverImage:    "https://images.unsplash.com/photo-1512436991641-6745cdb1723f?q=80&w=1200&auto=format&fit=crop",
	},
	{
		Title:         "Electronics Supplier Pack 2025",
		Category:      models.CategoryElectronics,
		SupplierNames: []string{"ElectraDepot"},
		Description:   "Gadget, accessori e small electronics per e-commerce",
		Price:         9.99,
		FilePath:      "downloads/electronics-pack-2025.pdf",
		CoverImage:    "https://images.unsplash.com/photo-1518779578993-ec3579fee39f?q=80&w=1200&auto=format&fit=crop",
	},
	{
		Title:         "All Suppliers Mega Bundle 2025",
		Category:      models.CategoryMixed,
		SupplierNames: []string{"AromaHub", "SneakSupply", "WearWave", "ElectraDepot"},
		Description:   "Bundle completo: profumi, scarpe, apparel, elettronica",
		Price:         49.99,
		FilePath:      "downloads/mega-bundle-2025.zip",
		CoverImage:    "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?q=80&w=1200&auto=format&fit=crop",
	},
}

// Seed наполняет коллекции поставщиков и пакетов демо-данными, если они пусты.
// Проверка "пусто?" и вставка не атомарны: при конкурентном старте возможно
// задвоение демо-записей, что для демо-данных приемлемо.
func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	const op = "service.SeedService.Seed"
	logger := s.log.With(slog.String("op", op))
	logger.Info("seeding demo data")

	result := &SeedResult{}

	suppliers, err := s.supplierRepo.ListSuppliers(ctx, "")
	if err != nil {
		logger.Error("failed to list suppliers", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(suppliers) == 0 {
		for _, supplier := range demoSuppliers {
			supplier := supplier
			if err := seedValidate.Struct(supplier); err != nil {
				return nil, fmt.Errorf("%s: invalid demo supplier %q: %w", op, supplier.Name, err)
			}
			if _, err := s.supplierRepo.CreateSupplier(ctx, &supplier); err != nil {
				logger.Error("failed to create supplier", slog.Any("error", err))
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			result.Suppliers++
		}
	}

	assets, err := s.assetRepo.ListAssets(ctx, "")
	if err != nil {
		logger.Error("failed to list assets", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(assets) == 0 {
		for _, asset := range demoAssets {
			asset := asset
			if err := seedValidate.Struct(asset); err != nil {
				return nil, fmt.Errorf("%s: invalid demo asset %q: %w", op, asset.Title, err)
			}
			if _, err := s.assetRepo.CreateAsset(ctx, &asset); err != nil {
				logger.Error("failed to create asset", slog.Any("error", err))
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			result.Assets++
		}
	}

	logger.Info("seeding finished",
		slog.Int("suppliers", result.Suppliers),
		slog.Int("assets", result.Assets),
	)
	return result, nil
}
