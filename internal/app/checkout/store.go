package checkout

import (
	"sync"

	"github.com/google/uuid"

	"github.com/digital-menu-qr/menu-service/internal/domain"
)

// Store keeps the live cart sessions, one composer per opaque token. A
// session is created when a customer opens a menu and released when they
// leave or the cart handler expires it.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Composer
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Composer)}
}

// Create opens a new empty cart session against the menu and returns its
// token.
func (s *Store) Create(menu *domain.Menu) (string, *Composer) {
	token := uuid.NewString()
	comp := NewComposer(menu)

	s.mu.Lock()
	s.sessions[token] = comp
	s.mu.Unlock()

	return token, comp
}

func (s *Store) Get(token string) (*Composer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comp, ok := s.sessions[token]
	return comp, ok
}

func (s *Store) Release(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
