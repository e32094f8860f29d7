package entity

import "time"

// User identidad registrada. El username es único y sensible a mayúsculas.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca la contraseña plana
	Roles        []Role
	CreatedAt    time.Time
}

// HasRole indica si el usuario tiene asignado el rol name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames devuelve los nombres de los roles asignados.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}
