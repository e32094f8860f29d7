package dto

import "time"

// RegisterRequest entrada para registro desde el formulario.
type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=1,max=80"`
	Password string `form:"password" json:"password" validate:"required,min=1,max=72"`
}

// LoginRequest entrada para login desde el formulario.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,max=80"`
	Password string `form:"password" json:"password" validate:"required,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity identidad de la sesión activa.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole indica si la identidad tiene el rol name.
func (i *Identity) HasRole(name string) bool {
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}
