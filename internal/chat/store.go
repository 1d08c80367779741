package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store keeps sessions in memory. With an idle TTL set, Sweep drops sessions
// nobody has touched for longer than the TTL.
type Store struct {
	router  *Router
	delay   time.Duration
	logger  zerolog.Logger
	idleTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(router *Router, delay time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		router:   router,
		delay:    delay,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// WithIdleTTL sets how long an untouched session survives. Zero keeps
// sessions until they are deleted.
func (s *Store) WithIdleTTL(ttl time.Duration) *Store {
	s.idleTTL = ttl
	return s
}

func (s *Store) Create() *Session {
	sess := NewSession(s.router, s.delay, s.logger)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info().Str("session_id", sess.ID).Msg("chat session created")
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	sess.Close()
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close cancels every pending reply. Sessions stay readable.
func (s *Store) Close() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.Close()
	}
}

// Sweep removes sessions idle since before now minus the TTL and returns how
// many it removed.
func (s *Store) Sweep(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-s.idleTTL)

	var expired []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
		s.logger.Info().Str("session_id", sess.ID).Msg("chat session expired")
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
