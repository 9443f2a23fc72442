package app

import (
	"go.uber.org/zap"

	"github.com/bajakarsa/bilahstore/internal/catalog"
	"github.com/bajakarsa/bilahstore/internal/domain"
)

// checkProducts seeds the catalog with a few showcase products when the
// store is empty, so a fresh install has something to render.
func (a *Application) checkProducts() {
	existing, err := a.pstore.Products()
	if err != nil {
		zap.L().Error("failed to read product store for seeding", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	defaults := []domain.RawProduct{
		{
			Title: "Tanto Hitam", Price: 1850000, Category: "Tactical",
			Images: []string{"/images/tanto-hitam-1.jpg", "/images/tanto-hitam-2.jpg"},
			Steel: "D2", HandleMaterial: "G10", BladeStyle: "Tanto", HandleStyle: "Textured",
			BladeLengthCm: 14, HandleLengthCm: 12,
			Description: "Pisau taktis bilah tanto, baja D2.",
		},
		{
			Title: "Pisau Dapur Santoku", Price: 950000, Category: "Kitchen",
			Images: []string{"/images/santoku-1.jpg"},
			Steel: "VG-10", HandleMaterial: "Walnut", BladeStyle: "Santoku", HandleStyle: "Octagonal",
			BladeLengthCm: 17, HandleLengthCm: 13,
			Description: "Pisau dapur serbaguna gagang kayu walnut.",
		},
		{
			Title: "Golok Kebun", Price: 720000, Category: "Machete",
			Images: []string{"/images/golok-kebun-1.jpg"},
			Steel: "5160", HandleMaterial: "Sono Keling", BladeStyle: "Full Flat", HandleStyle: "Contoured",
			BladeLengthCm: 30, HandleLengthCm: 14,
			Description: "Golok tempa tangan untuk kerja kebun berat.",
		},
	}

	list := make([]domain.UnifiedProduct, 0, len(defaults))
	for _, raw := range defaults {
		raw.ID = catalog.NewProductID()
		list = append(list, catalog.Normalize(raw))
	}

	if err := a.pstore.SaveProducts(list); err != nil {
		zap.L().Error("failed to seed default products", zap.Error(err))
		return
	}
	zap.L().Info("initialized default catalog", zap.Int("products", len(list)))
}
