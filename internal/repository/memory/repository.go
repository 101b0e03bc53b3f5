package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Repository is an in-process TTL cache.
type Repository struct {
	clock   clockwork.Clock
	entries map[string]entry
	mu      sync.RWMutex
}

func NewRepository(clock clockwork.Clock) *Repository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Repository{
		clock:   clock,
		entries: make(map[string]entry),
	}
}

func (r *Repository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !r.clock.Now().Before(e.expiresAt) {
		r.mu.Lock()
		if cur, ok := r.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value. A non-positive ttl never expires.
func (r *Repository) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = r.clock.Now().Add(ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = e
	return nil
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
