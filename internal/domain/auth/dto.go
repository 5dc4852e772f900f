package auth

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	ShopName string `json:"shop_name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	City     string `json:"city" validate:"required,min=2,max=100"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents a shopkeeper in API responses
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ShopName string `json:"shop_name"`
	City     string `json:"city"`
}

// RegisterResponse returned after register
type RegisterResponse struct {
	Message string `json:"message"`
}

// AuthResponse returned after login
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
