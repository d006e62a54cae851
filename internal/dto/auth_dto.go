package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegistroRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Ciudad   string `json:"ciudad"   validate:"required,min=1,max=120"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	Ciudad string `json:"ciudad"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	User        UsuarioResponse `json:"user"`
}
