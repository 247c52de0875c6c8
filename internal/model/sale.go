package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. The only legal transition is pending ↔ paid.
const (
	SaleStatusPending = "pending"
	SaleStatusPaid    = "paid"
)

// Sale is an order ticket. CustomerName is free text (walk-ins have no
// Customer row). TotalPrice must equal the sum of item subtotals; this is
// validated at creation time and never recomputed afterwards.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName string          `gorm:"not null"`
	TableNumber  int             `gorm:"not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SaleDate     time.Time       `gorm:"type:date;not null"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending'"`
	// UserID is who rang the sale up; nulled if that account is later deleted
	// so the ticket itself survives.
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items      []SaleItem  `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// SaleItem is a snapshot of a product line at the moment of sale. ProductID
// is kept for reference only, deliberately without a foreign key to products, so
// later edits or deletions of the product never touch historical sales.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	// Position preserves the order the items were rung up in.
	Position int `gorm:"not null"`
}
