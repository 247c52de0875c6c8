package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Name      string          `json:"name"       validate:"required,min=1,max=100"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required,gt=0"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
}

// CreateSaleRequest carries the item snapshot and the client-computed total.
// The service re-derives the total from the items and rejects a mismatch.
type CreateSaleRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,min=1,max=100"`
	TableNumber  int               `json:"table_number"  validate:"min=0"`
	Items        []SaleItemRequest `json:"items"         validate:"required,min=1,dive"`
	TotalPrice   decimal.Decimal   `json:"total_price"   validate:"required"`
	SaleDate     string            `json:"sale_date"     validate:"omitempty,datetime=2006-01-02"`
	Status       string            `json:"status"        validate:"omitempty,oneof=pending paid"`
}

type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

type BulkDeleteSalesRequest struct {
	IDs []string `json:"ids" validate:"dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name"`
	TableNumber  int                `json:"table_number"`
	Items        []SaleItemResponse `json:"items"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	SaleDate     string             `json:"sale_date"`
	Status       string             `json:"status"`
	UserID       string             `json:"user_id,omitempty"`
	RestaurantID string             `json:"restaurant_id"`
}

type BulkDeleteSalesResponse struct {
	Deleted int64 `json:"deleted"`
}
