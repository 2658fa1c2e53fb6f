package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

// Entry is one generated snapshot held by the registry.
type Entry struct {
	ID        string                  `json:"id"`
	Seed      int64                   `json:"seed"`
	CreatedAt time.Time               `json:"created_at"`
	Snapshot  *timeline.WorldSnapshot `json:"-"`
}

// Registry keeps the most recent snapshots in memory. Snapshots are
// immutable, so readers share them without copying.
type Registry struct {
	mu      sync.RWMutex
	limit   int
	order   []string
	entries map[string]*Entry
}

// NewRegistry creates a registry that evicts the oldest entry past limit.
func NewRegistry(limit int) *Registry {
	if limit <= 0 {
		limit = 1
	}
	return &Registry{
		limit:   limit,
		entries: make(map[string]*Entry),
	}
}

// Add stores a snapshot and returns its entry.
func (r *Registry) Add(snap *timeline.WorldSnapshot, seed int64) *Entry {
	e := &Entry{
		ID:        uuid.New().String(),
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
		Snapshot:  snap,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	for len(r.order) > r.limit {
		delete(r.entries, r.order[0])
		r.order = r.order[1:]
	}
	return e
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// List returns entries oldest first.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Len is the number of stored snapshots.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
