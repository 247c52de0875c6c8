package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterRequest creates a restaurant together with its first admin user in
// one transaction. In an empty system the admin becomes the superadmin.
type RegisterRequest struct {
	Restaurant RestaurantFields `json:"restaurant" validate:"required"`
	Admin      AdminFields      `json:"admin"      validate:"required"`
}

type RestaurantFields struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"max=200"`
	Phone   string `json:"phone"   validate:"max=30"`
}

type AdminFields struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}

type RegisterResponse struct {
	RestaurantID string       `json:"restaurant_id"`
	Admin        UserResponse `json:"admin"`
}
