package dto

// LoginRequest credenciales de una cuenta configurada.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos de la sesión.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // segundos
}

// FlushResponse estado del almacenamiento tras reintentar el guardado.
type FlushResponse struct {
	Dirty   bool   `json:"dirty"`
	Message string `json:"message"`
}
