package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products within a single restaurant.
type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}
