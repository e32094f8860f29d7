// Package session guarda las sesiones del lado servidor en un LRU con expiración.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

var _ ports.SessionStore = (*Store)(nil)

type entry struct {
	mu   sync.Mutex
	data entity.Session
}

// Store sesiones indexadas por id. Cada sesión tiene su propio lock, así que dos
// requests del mismo cliente no pisan sus cambios y clientes distintos no se bloquean.
// Superado maxEntries se descarta la sesión usada hace más tiempo.
type Store struct {
	lru *expirable.LRU[string, *entry]
}

// NewStore crea el store; ttl es el tiempo de vida desde el último Touch.
func NewStore(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &Store{lru: expirable.NewLRU[string, *entry](maxEntries, nil, ttl)}
}

// Create abre una sesión vacía.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.lru.Add(id, &entry{data: entity.Session{ID: id}})
	return id
}

// Load devuelve una copia de la sesión.
func (s *Store) Load(id string) (entity.Session, bool) {
	e, ok := s.lru.Get(id)
	if !ok {
		return entity.Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.Clone(), true
}

// Update aplica fn con el lock de la sesión tomado. Si fn falla los cambios se descartan.
func (s *Store) Update(id string, fn func(*entity.Session) error) error {
	e, ok := s.lru.Get(id)
	if !ok {
		return domain.ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	work := e.data.Clone()
	if err := fn(&work); err != nil {
		return err
	}
	work.ID = e.data.ID
	e.data = work
	return nil
}

// Touch renueva el vencimiento de la sesión. false si ya no existe.
func (s *Store) Touch(id string) bool {
	e, ok := s.lru.Get(id)
	if !ok {
		return false
	}
	s.lru.Add(id, e)
	return true
}

// Delete elimina la sesión.
func (s *Store) Delete(id string) {
	s.lru.Remove(id)
}

// Len cantidad de sesiones vivas.
func (s *Store) Len() int {
	return s.lru.Len()
}
