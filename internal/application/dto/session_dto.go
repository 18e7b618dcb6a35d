package dto

// LoginRequest body de POST /api/session/login.
type LoginRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// SessionResponse banderas de sesión visibles para la UI.
type SessionResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserName   string `json:"userName,omitempty"`
	Email      string `json:"email,omitempty"`
	Favorites  int    `json:"favorites"`
}
