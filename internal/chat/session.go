package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Skufu/medassist/internal/patient"
	"github.com/Skufu/medassist/internal/risk"
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrSessionNotFound = errors.New("session not found")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Rule      string    `json:"rule,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type pendingReply struct {
	timer *time.Timer
	done  chan struct{}
}

// Session is one conversation plus the patient snapshot it reasons over.
// At most one assistant reply is pending at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	router *Router
	delay  time.Duration
	logger zerolog.Logger

	mu         sync.Mutex
	state      *patient.State
	turns      []Turn
	pending    *pendingReply
	lastActive time.Time
}

// View is a consistent copy of a session for rendering.
type View struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"createdAt"`
	Turns      []Turn          `json:"turns"`
	Pending    bool            `json:"pending"`
	Symptoms   []string        `json:"symptoms"`
	Conditions []string        `json:"conditions"`
	Vitals     risk.Vitals     `json:"vitals"`
	Risk       risk.Assessment `json:"risk"`
}

func NewSession(router *Router, delay time.Duration, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	now := time.Now()
	return &Session{
		ID:         id,
		CreatedAt:  now,
		lastActive: now,
		router:     router,
		delay:      delay,
		logger:     logger.With().Str("session_id", id).Logger(),
		state:      patient.NewState(),
	}
}

// Submit records the user turn and schedules the reply. The reply is computed
// from the tracked symptoms at submit time and appended once the delay has
// elapsed. A reply still pending from an earlier message is dropped.
func (s *Session) Submit(text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.pending != nil {
		s.logger.Debug().Msg("superseding pending reply")
		s.cancelPendingLocked()
	}

	userTurn := Turn{ID: uuid.NewString(), Role: RoleUser, Text: text, Timestamp: time.Now()}
	s.turns = append(s.turns, userTurn)

	reply, rule := s.router.Route(text, s.state.Symptoms())
	if s.delay <= 0 {
		s.appendReplyLocked(reply, rule)
		return userTurn, nil
	}

	p := &pendingReply{done: make(chan struct{})}
	s.pending = p
	p.timer = time.AfterFunc(s.delay, func() {
		s.deliver(p, reply, rule)
	})
	return userTurn, nil
}

func (s *Session) deliver(p *pendingReply, reply, rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != p {
		return
	}
	s.pending = nil
	s.appendReplyLocked(reply, rule)
	close(p.done)
}

func (s *Session) appendReplyLocked(reply, rule string) {
	s.turns = append(s.turns, Turn{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      reply,
		Rule:      rule,
		Timestamp: time.Now(),
	})
	s.logger.Debug().Str("rule", rule).Msg("reply delivered")
}

func (s *Session) cancelPendingLocked() {
	p := s.pending
	s.pending = nil
	p.timer.Stop()
	close(p.done)
}

// Wait blocks until no reply is pending or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		p := s.pending
		s.mu.Unlock()
		if p == nil {
			return nil
		}

		select {
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// LastReply returns the newest assistant turn, if any.
func (s *Session) LastReply() (Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == RoleAssistant {
			return s.turns[i], true
		}
	}
	return Turn{}, false
}

func (s *Session) AddSymptom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return s.state.AddSymptom(id)
}

func (s *Session) AddCondition(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return s.state.AddCondition(id)
}

func (s *Session) SetVitals(v risk.Vitals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	s.state.SetVitals(v)
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return View{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		Turns:      turns,
		Pending:    s.pending != nil,
		Symptoms:   s.state.Symptoms(),
		Conditions: s.state.Conditions(),
		Vitals:     s.state.Vitals(),
		Risk:       s.state.Assess(),
	}
}

// LastActive is when the session was last read or written through its API.
// Reply delivery does not count.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close drops any pending reply.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.cancelPendingLocked()
	}
}
