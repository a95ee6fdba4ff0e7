package models

// Asset представляет покупаемый цифровой пакет: файл плюс метаданные.
type Asset struct {
	ID            string   `json:"id,omitempty"`
	Title         string   `json:"title" validate:"required"`
	Category      Category `json:"category" validate:"required"`
	SupplierNames []string `json:"supplier_names"` // связанные поставщики, порядок сохраняется
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price" validate:"gte=0"`
	FilePath      string   `json:"file_path" validate:"required"` // относительный путь внутри корня загрузок
	CoverImage    string   `json:"cover_image,omitempty"`
}
