package model

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is the tenant root. Every other entity carries a RestaurantID
// foreign key with ON DELETE CASCADE, so deleting a restaurant removes all
// of its users, catalog rows and sales in one statement.
type Restaurant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}
