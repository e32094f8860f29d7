package ports

import "github.com/nahuelmangano/speedtest/internal/domain/entity"

// SessionStore define el puerto para el estado efímero por cliente.
// Las mutaciones sobre una misma sesión se serializan: Update nunca pierde escrituras concurrentes.
type SessionStore interface {
	// Create abre una sesión vacía y devuelve su id.
	Create() string
	// Load devuelve una copia de la sesión; false si no existe o expiró.
	Load(id string) (entity.Session, bool)
	// Update aplica fn bajo el lock de la sesión. ErrNotFound si la sesión no existe.
	Update(id string, fn func(s *entity.Session) error) error
	// Delete elimina la sesión.
	Delete(id string)
}
