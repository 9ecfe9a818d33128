//go:build !production

package testutil

import "sync"

// MutableToken is a token source whose credential can change mid-test.
type MutableToken struct {
	mu    sync.RWMutex
	token string
}

// NewMutableToken starts with token.
func NewMutableToken(token string) *MutableToken {
	return &MutableToken{token: token}
}

func (m *MutableToken) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Set replaces the credential; "" logs the player out.
func (m *MutableToken) Set(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}
