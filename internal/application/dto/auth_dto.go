package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser identidad pública retornada tras el login (nunca incluye el hash).
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse salida con token JWT e identidad pública.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// ChangePasswordRequest entrada para cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
