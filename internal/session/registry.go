package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the in-memory map of live matches. It is the only state
// shared across sessions, so it carries its own lock: the hub goroutine and
// the HTTP create endpoint both reach it. Each match guards itself.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match

	turnsTotal   int
	turnDuration time.Duration
	resolver     Resolver
	events       EventSink
}

// NewRegistry wires the dependencies every match will share.
func NewRegistry(turnsTotal int, turnDuration time.Duration, resolver Resolver, events EventSink) *Registry {
	if events == nil {
		events = discardSink{}
	}
	return &Registry{
		matches:      make(map[string]*Match),
		turnsTotal:   turnsTotal,
		turnDuration: turnDuration,
		resolver:     resolver,
		events:       events,
	}
}

// Create allocates a waiting match. An empty id gets a generated one;
// callers may pass a fixed id for deterministic setups. Collisions are not
// checked, matching the create contract: the last writer wins.
func (r *Registry) Create(id string) *Match {
	if id == "" {
		id = uuid.NewString()
	}
	m := NewMatch(id, r.turnsTotal, r.turnDuration, r.resolver, r.events)

	r.mu.Lock()
	r.matches[id] = m
	r.mu.Unlock()

	log.Printf("[Registry] match %s created (%d total)", id, r.Len())
	r.events.MatchCreated(id)
	return m
}

// Get looks up a match by id.
func (r *Registry) Get(id string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

// Remove deletes a match; absent ids are a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.matches, id)
	r.mu.Unlock()
}

// AddPlayer inserts a player into the named match. Returns false without
// side effects when the match does not exist.
func (r *Registry) AddPlayer(id string, p *PlayerState) bool {
	m, ok := r.Get(id)
	if !ok {
		return false
	}
	m.AddPlayer(p)
	return true
}

// Len reports the number of live matches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}
