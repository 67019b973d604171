// Package session manages server-side admin sessions. Tokens are held
// in memory and never persisted; the cookie value is the token plus an
// HMAC signature so that a forged or truncated cookie fails before any
// lookup happens.
package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Session is the server-side state behind one cookie.
type Session struct {
	Email     string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]Session
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		secret:  secret,
		ttl:     ttl,
		entries: make(map[string]Session),
	}
}

func newToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Create registers a new session for the given admin and returns the
// signed cookie value.
func (m *Manager) Create(email string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	m.mu.Lock()
	m.entries[token] = Session{Email: email, ExpiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()

	return token + "." + hex.EncodeToString(m.sign(token)), nil
}

// Get returns the live session behind the cookie value, or nil when the
// signature is bad, the token is unknown, or the session has expired.
func (m *Manager) Get(value string) *Session {
	token, ok := m.verify(value)
	if !ok {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[token]
	if !ok {
		return nil
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(m.entries, token)
		return nil
	}
	return &entry
}

// Valid reports whether the cookie value refers to a live session.
func (m *Manager) Valid(value string) bool {
	return m.Get(value) != nil
}

// Destroy removes the session named by the cookie value. Unknown or
// malformed values are ignored.
func (m *Manager) Destroy(value string) {
	token, ok := m.verify(value)
	if !ok {
		return
	}

	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
}

// Sweep drops expired sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, entry := range m.entries {
		if now.After(entry.ExpiresAt) {
			delete(m.entries, token)
			removed++
		}
	}
	return removed
}

// TTL is the session lifetime, exposed so cookie expiry can match.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) sign(token string) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

func (m *Manager) verify(value string) (string, bool) {
	token, sigHex, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(sig, m.sign(token)) {
		return "", false
	}
	return token, true
}
