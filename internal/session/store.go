// Package session owns the per-visitor cart storage. Carts live in memory,
// keyed by an opaque session ID; the store serializes access per session so
// each request runs to completion against its cart before the next one for
// the same visitor is processed. Carts from different sessions never share
// state.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okrause/sportshop/internal/domain"
)

// DefaultTTL matches the storefront session cookie lifetime.
const DefaultTTL = 30 * 24 * time.Hour

type entry struct {
	mu       sync.Mutex
	cart     *domain.Cart
	lastSeen time.Time
}

// Store is a session-scoped cart store.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	logger  *slog.Logger
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
// A non-positive ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger,
	}
}

// With runs fn against the cart for sessionID, holding the session's lock
// for the duration of fn. An empty or unknown sessionID gets a fresh empty
// cart under a newly generated ID. Returns the session ID the cart is
// stored under, which callers must hand back to the client.
func (s *Store) With(sessionID string, fn func(cart *domain.Cart) error) (string, error) {
	s.mu.Lock()
	e, ok := s.entries[sessionID]
	if !ok {
		sessionID = uuid.NewString()
		e = &entry{cart: domain.NewCart()}
		s.entries[sessionID] = e
	}
	e.lastSeen = time.Now()
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return sessionID, fn(e.cart)
}

// Contains reports whether sessionID has a live cart.
func (s *Store) Contains(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[sessionID]
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep discards sessions idle past the TTL and returns how many were
// removed. The cart is discarded with the session; it is never persisted.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := s.Sweep(now); n > 0 {
					s.logger.Debug("expired cart sessions swept", "count", n)
				}
			}
		}
	}()
}
