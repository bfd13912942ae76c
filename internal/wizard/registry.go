package wizard

import (
	"context"
	"sync"
	"time"
)

type registryEntry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Registry keeps live wizards in memory and discards idle ones.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	idleTTL time.Duration
	now     func() time.Time
}

// NewRegistry returns an empty registry. A non-positive idleTTL disables expiry.
func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Put stores w under its ID.
func (r *Registry) Put(w *Wizard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[w.ID()] = &registryEntry{wizard: w, lastSeen: r.now()}
}

// Get returns the wizard and refreshes its idle timer.
func (r *Registry) Get(id string) (*Wizard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = r.now()
	return entry.wizard, true
}

// Remove discards and forgets the wizard.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		entry.wizard.Discard()
	}
}

// RemoveWhere discards and forgets every wizard matching fn and returns how
// many were removed.
func (r *Registry) RemoveWhere(fn func(*Wizard) bool) int {
	r.mu.Lock()
	var matched []*Wizard
	for id, entry := range r.entries {
		if fn(entry.wizard) {
			matched = append(matched, entry.wizard)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, w := range matched {
		w.Discard()
	}
	return len(matched)
}

// Len returns the number of live wizards.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep discards wizards idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []*Wizard
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.wizard)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, w := range expired {
		w.Discard()
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 && onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
