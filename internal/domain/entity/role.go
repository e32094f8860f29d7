package entity

// Roles sembrados al arrancar.
const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RoleModerator = "moderator"
)

// DefaultRoles universo fijo de roles creado por el seed inicial.
var DefaultRoles = []string{RoleAdmin, RoleUser, RoleModerator}

// Role etiqueta de capacidad asociada a usuarios (muchos a muchos).
type Role struct {
	ID   string
	Name string
}
