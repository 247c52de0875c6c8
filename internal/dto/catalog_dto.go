package dto

import "github.com/shopspring/decimal"

// Products, categories and customers share the same scoped CRUD shape, so
// their DTOs live together.

// ─── Product ─────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string          `json:"name"     validate:"required,min=1,max=100"`
	Price    decimal.Decimal `json:"price"    validate:"required,gt=0"`
	Category string          `json:"category" validate:"required,min=1,max=100"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=1,max=100"`
	Price    *decimal.Decimal `json:"price"    validate:"omitempty,gt=0"`
	Category *string          `json:"category" validate:"omitempty,min=1,max=100"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	RestaurantID string          `json:"restaurant_id"`
}

// ─── Category ────────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RestaurantID string `json:"restaurant_id"`
}

// ─── Customer ────────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=30"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
}

type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	RestaurantID string `json:"restaurant_id"`
}
