package blocklist

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local revocation set. It starts empty and is safe for
// concurrent use. Entries are dropped once the token would have expired anyway.
// Use Redis when more than one API process serves traffic.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemory returns an empty in-memory blocklist.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Add revokes jti until expiresAt. A zero expiresAt keeps the entry forever.
func (m *Memory) Add(_ context.Context, jti string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	m.entries[jti] = expiresAt
	return nil
}

// Contains reports whether jti has been revoked.
func (m *Memory) Contains(_ context.Context, jti string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[jti]
	return ok, nil
}

func (m *Memory) pruneLocked() {
	now := m.now()
	for jti, exp := range m.entries {
		if !exp.IsZero() && now.After(exp) {
			delete(m.entries, jti)
		}
	}
}
