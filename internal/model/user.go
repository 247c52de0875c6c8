package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the capability level of a user account.
// Ordering: superadmin > admin > seller > waiter.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleSeller     Role = "seller"
	RoleWaiter     Role = "waiter"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleSeller, RoleWaiter:
		return true
	}
	return false
}

// User belongs to exactly one restaurant. Email is unique across the whole
// table, not per tenant, because it doubles as the login identifier.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(20);not null"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}
