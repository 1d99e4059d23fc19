package catalog

import "github.com/RanjithMathi/freshto-gateway/internal/money"

type Product struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	SaleType    string      `json:"saleType,omitempty"`
	Price       money.Paise `json:"price"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Stock       int         `json:"stockQuantity"`
	Available   bool        `json:"available"`
}
