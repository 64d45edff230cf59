package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn is one utterance in a session's history.
type Turn struct {
	Role      string    `json:"role"` // user, assistant, system
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session holds one conversation's in-memory state. Sessions live for the
// process lifetime; there is no expiry.
type Session struct {
	ID           string    `json:"id"`
	Turns        []Turn    `json:"turns"`
	Names        []string  `json:"names,omitempty"`
	Departments  []string  `json:"departments,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Meta is the admin-facing summary of a session.
type Meta struct {
	ID           string    `json:"id"`
	TurnCount    int       `json:"turn_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store owns all conversation sessions, keyed by id. All access goes
// through the store; handlers never hold session pointers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Start creates a new session and returns its id.
func (s *Store) Start() *Session {
	now := time.Now()
	sess := &Session{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// GetOrCreate returns the session for id, lazily creating one when id is
// empty or unknown.
func (s *Store) GetOrCreate(id string) *Session {
	if id != "" {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return sess
		}
	}

	now := time.Now()
	if id == "" {
		id = uuid.NewString()
	}
	sess := &Session{ID: id, CreatedAt: now, LastActivity: now}

	s.mu.Lock()
	// Re-check under the write lock; a concurrent request may have won.
	if existing, ok := s.sessions[id]; ok {
		sess = existing
	} else {
		s.sessions[id] = sess
	}
	s.mu.Unlock()
	return sess
}

// Append adds a turn and updates the activity timestamp.
func (s *Store) Append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	now := time.Now()
	sess.Turns = append(sess.Turns, Turn{Role: role, Content: content, CreatedAt: now})
	sess.LastActivity = now
}

// RememberEntities records names and departments mentioned in a turn.
func (s *Store) RememberEntities(id string, names, departments []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	sess.Names = append(sess.Names, names...)
	sess.Departments = append(sess.Departments, departments...)
}

// Window returns up to n most recent turns, oldest first.
func (s *Store) Window(id string, n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	turns := sess.Turns
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Clear empties a session's history without removing the session.
func (s *Store) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Turns = nil
	sess.Names = nil
	sess.Departments = nil
	sess.LastActivity = time.Now()
	return true
}

// Exists reports whether a session id is known.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// List returns metadata for every session, for the admin surface.
func (s *Store) List() []Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Meta, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, Meta{
			ID:           sess.ID,
			TurnCount:    len(sess.Turns),
			CreatedAt:    sess.CreatedAt,
			LastActivity: sess.LastActivity,
		})
	}
	return out
}
