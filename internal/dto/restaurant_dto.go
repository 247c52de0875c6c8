package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateRestaurantRequest may change the restaurant fields, the admin account
// fields, or both; everything supplied is applied in a single transaction.
type UpdateRestaurantRequest struct {
	Restaurant *UpdateRestaurantFields `json:"restaurant" validate:"omitempty"`
	Admin      *UpdateAdminFields      `json:"admin"      validate:"omitempty"`
}

type UpdateRestaurantFields struct {
	Name    *string `json:"name"    validate:"omitempty,min=2,max=100"`
	Address *string `json:"address" validate:"omitempty,max=200"`
	Phone   *string `json:"phone"   validate:"omitempty,max=30"`
}

// UpdateAdminFields targets one user of the restaurant by id. Password is
// applied only when a new one of minimum length is supplied.
type UpdateAdminFields struct {
	UserID   string  `json:"user_id"  validate:"required,uuid"`
	Name     *string `json:"name"     validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RestaurantResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Phone   string         `json:"phone"`
	Users   []UserResponse `json:"users,omitempty"`
}
