// Package revocation tracks access tokens that were invalidated before their
// natural expiry. Entries live for a fixed window that exceeds any plausible
// access-token lifetime, so the set stays bounded.
package revocation

import (
	"context"
	"sync"
	"time"
)

const DefaultWindow = 24 * time.Hour

// Registry is the revocation store consulted before trusting an otherwise
// valid access token. Implementations must be safe for concurrent use.
type Registry interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Close() error
}

// Memory is the single-process implementation. It resets on restart; any
// token revoked but not yet expired is trusted again, which the short access
// token lifetime keeps survivable. Deployments with more than one instance
// should use the Redis registry instead.
type Memory struct {
	window time.Duration

	mu     sync.RWMutex
	closed bool
	tokens map[string]*time.Timer
}

func NewMemory(window time.Duration) *Memory {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Memory{
		window: window,
		tokens: make(map[string]*time.Timer),
	}
}

func (m *Memory) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	if _, ok := m.tokens[token]; ok {
		// Already revoked; keep the original removal deadline.
		return nil
	}
	m.tokens[token] = time.AfterFunc(m.window, func() {
		m.mu.Lock()
		delete(m.tokens, token)
		m.mu.Unlock()
	})
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tokens[token]
	return ok, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for token, timer := range m.tokens {
		timer.Stop()
		delete(m.tokens, token)
	}
	return nil
}
