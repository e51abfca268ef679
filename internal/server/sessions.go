package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds one logged-in browser's credentials. The API token
// lives only here, in process memory, until logout or expiry.
type Session struct {
	ID        string
	Username  string
	Token     string
	CreatedAt time.Time
}

type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
	}
}

func (s *SessionStore) Create(username, token string) Session {
	sess := Session{
		ID:        uuid.NewString(),
		Username:  username,
		Token:     token,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for id. Expired sessions are torn down on
// access and reported as absent.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if time.Since(sess.CreatedAt) > s.ttl {
		delete(s.sessions, id)
		return Session{}, false
	}
	return sess, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
