package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePurchaseRequest struct {
	ProductName  string          `json:"product_name"  validate:"required,min=1,max=100"`
	Supplier     string          `json:"supplier"      validate:"required,min=1,max=100"`
	Quantity     int             `json:"quantity"      validate:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"    validate:"required,gt=0"`
	PurchaseDate string          `json:"purchase_date" validate:"required,datetime=2006-01-02"`
}

type UpdatePurchaseRequest struct {
	ProductName  *string          `json:"product_name"  validate:"omitempty,min=1,max=100"`
	Supplier     *string          `json:"supplier"      validate:"omitempty,min=1,max=100"`
	Quantity     *int             `json:"quantity"      validate:"omitempty,min=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price"    validate:"omitempty,gt=0"`
	PurchaseDate *string          `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseResponse struct {
	ID           string          `json:"id"`
	ProductName  string          `json:"product_name"`
	Supplier     string          `json:"supplier"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PurchaseDate string          `json:"purchase_date"`
	RestaurantID string          `json:"restaurant_id"`
}
