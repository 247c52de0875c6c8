package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a named client of a restaurant. Unlike users, customer emails
// are informational only and carry no uniqueness guarantee.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string
	Phone        string
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}
