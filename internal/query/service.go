package query

import (
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Service is the execution service: a registry of active runners keyed
// by resource URI. Views look up the runner for an input's URI rather
// than holding runner references across rebinds.
type Service struct {
	mu      sync.Mutex
	pool    *pgxpool.Pool
	runners map[string]*Runner
}

// NewService creates an execution service backed by the given pool.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{
		pool:    pool,
		runners: make(map[string]*Runner),
	}
}

// Lookup returns the runner for uri, creating one if none exists.
func (s *Service) Lookup(uri string) *Runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.runners[uri]; ok {
		return r
	}
	r := NewRunner(uri, s.pool)
	s.runners[uri] = r
	return r
}

// Get returns the runner for uri without creating one.
func (s *Service) Get(uri string) (*Runner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runners[uri]
	return r, ok
}

// Rebind discards any existing runner for uri and creates a fresh one.
// The returned runner has a new identity, so stale lifecycle messages
// addressed to the old runner are dropped by their consumers.
func (s *Service) Rebind(uri string) *Runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := NewRunner(uri, s.pool)
	s.runners[uri] = r
	return r
}

// Remove drops the runner for uri, if any.
func (s *Service) Remove(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runners, uri)
}

// Close drops all runners.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners = make(map[string]*Runner)
}
