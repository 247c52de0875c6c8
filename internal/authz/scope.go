package authz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope is the tenant boundary an operation runs under: either one specific
// restaurant or every restaurant at once. The all-tenants variant has no
// public constructor; it can only come out of ResolveScope for a superadmin
// actor, so a Scope value in hand is already authorized.
type Scope struct {
	restaurantID uuid.UUID
	all          bool
}

// ScopeFor returns a scope narrowed to a single restaurant.
func ScopeFor(restaurantID uuid.UUID) Scope {
	return Scope{restaurantID: restaurantID}
}

// All reports whether the scope spans every tenant.
func (s Scope) All() bool { return s.all }

// RestaurantID returns the tenant id and false for the all-tenants scope.
func (s Scope) RestaurantID() (uuid.UUID, bool) {
	if s.all {
		return uuid.Nil, false
	}
	return s.restaurantID, true
}

// Apply adds the tenant filter to a gorm query; the all-tenants scope leaves
// the query unfiltered.
func (s Scope) Apply(q *gorm.DB) *gorm.DB {
	if s.all {
		return q
	}
	return q.Where("restaurant_id = ?", s.restaurantID)
}

// Contains reports whether rows owned by restaurantID are visible in s.
func (s Scope) Contains(restaurantID uuid.UUID) bool {
	return s.all || s.restaurantID == restaurantID
}
