package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SKU         string `json:"sku"`
	// NUMERIC in Postgres; decimal end to end to avoid rounding errors
	SalePrice decimal.Decimal `json:"sale_price"`
	Cost      decimal.Decimal `json:"cost"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	Category  string          `json:"category,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// category filter applied
	Category string `json:"category,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// items found
	Items []Product `json:"items"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string          `json:"name"        binding:"required" example:"Arroz 5kg"`
	Description string          `json:"description" example:"Arroz branco tipo 1"`
	SKU         string          `json:"sku"         binding:"required" example:"ARZ-5KG"`
	SalePrice   decimal.Decimal `json:"sale_price"  binding:"required" example:"24.90"`
	Cost        decimal.Decimal `json:"cost"        example:"18.00"`
	Unit        string          `json:"unit"        example:"un"`
	Stock       decimal.Decimal `json:"stock"       example:"120"`
	Category    string          `json:"category"    example:"Alimentos"`
	ImageURL    string          `json:"image_url"`
}

// UpdateProductRequest payload of partial update.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Cost        *decimal.Decimal `json:"cost"`
	Unit        string           `json:"unit"`
	Stock       *decimal.Decimal `json:"stock"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
}
