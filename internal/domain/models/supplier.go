package models

// Supplier представляет поставщика в каталоге.
// Записи создаются при сидинге и после этого не изменяются.
type Supplier struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Category    Category `json:"category" validate:"required"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"` // рейтинг 0-5, по умолчанию 4.5
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	LogoURL     string   `json:"logo_url,omitempty"`
}
