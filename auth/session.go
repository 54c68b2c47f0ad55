package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// DefaultSessionTTL is the absolute session lifetime unless overridden.
const DefaultSessionTTL = 24 * time.Hour

const tokenBytes = 32 // 256 bits of entropy, hex-encoded to 64 chars

// Session is an issued login session. The token is the only handle to it.
type Session struct {
	Token         string    `json:"token"`
	PrincipalID   string    `json:"principal_id"`
	PrincipalKind string    `json:"principal_kind"` // "admin" or "partner"
	DisplayName   string    `json:"display_name"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// SessionStore maps opaque tokens to sessions for one principal kind.
// It is in-process only; expired sessions are reaped lazily on Verify.
// Construct one per principal kind so admin tokens never verify against
// the partner store and vice versa.
type SessionStore struct {
	mu       sync.RWMutex
	kind     string
	ttl      time.Duration
	sessions map[string]*Session

	// now is swappable in tests.
	now func() time.Time
}

func NewSessionStore(kind string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		kind:     kind,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create issues a new session for the principal and returns it, token
// included.
func (s *SessionStore) Create(principalID, displayName string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &Session{
		Token:         token,
		PrincipalID:   principalID,
		PrincipalKind: s.kind,
		DisplayName:   displayName,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// Verify returns the session for token iff it exists and has not expired.
// An expired session is deleted as a side effect and nil is returned.
func (s *SessionStore) Verify(token string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if s.now().UTC().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return nil
	}

	copied := *session
	return &copied
}

// Touch resets the session's expiry to now+TTL without changing the token or
// CreatedAt. No-op for unknown tokens.
func (s *SessionStore) Touch(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[token]; ok {
		session.ExpiresAt = s.now().UTC().Add(s.ttl)
	}
}

// Delete removes the session. Idempotent.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len reports the number of live (possibly expired but unreaped) sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
