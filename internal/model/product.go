package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a menu item. Category is a free label matched against the
// tenant's Category rows by name, not by foreign key.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"index;not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category     string          `gorm:"not null"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}
