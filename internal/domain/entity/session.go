package entity

// FlashLevel clasifica mensajes de una sola lectura.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashInfo    FlashLevel = "info"
)

// Flash mensaje que se muestra una vez en la siguiente página renderizada.
type Flash struct {
	Level   FlashLevel
	Message string
}

// Session estado efímero por cliente. Username vacío = anónimo.
// Cart conserva el orden de inserción y admite ids repetidos o inexistentes.
type Session struct {
	ID       string
	Username string
	Cart     []string
	Flashes  []Flash
}

// LoggedIn indica si la sesión tiene identidad.
func (s *Session) LoggedIn() bool {
	return s.Username != ""
}

// Clone copia profunda para entregar fuera del lock del store.
func (s Session) Clone() Session {
	out := s
	out.Cart = append([]string(nil), s.Cart...)
	out.Flashes = append([]Flash(nil), s.Flashes...)
	return out
}
