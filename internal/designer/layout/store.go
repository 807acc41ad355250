package layout

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ============================================================
// Session store
// ============================================================

// Session - один проект: зафиксированная раскладка и черновик рисования.
type Session struct {
	ID        string
	CreatedAt time.Time
	Layout    *Layout
	Draft     *Draft
}

// Store держит сессии в памяти. Между перезапусками ничего не сохраняется.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []Option
}

// NewStore - opts применяются к каждой новой раскладке.
func NewStore(opts ...Option) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

func (s *Store) Create() *Session {
	session, _ := s.CreateWith(nil)
	return session
}

// CreateWith наполняет новую сессию через populate и только потом
// регистрирует её. При ошибке populate сессия в хранилище не попадает.
func (s *Store) CreateWith(populate func(*Session) error) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Layout:    New(s.opts...),
		Draft:     NewDraft(),
	}
	if populate != nil {
		if err := populate(session); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return session, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	return session, nil
}

// Delete - no-op для неизвестного id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// IDs возвращает id сессий в порядке создания.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	ids := make([]string, len(sessions))
	for i, session := range sessions {
		ids[i] = session.ID
	}
	return ids
}
