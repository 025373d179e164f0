package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/marineiq/internal/application"
	appcorr "github.com/bryanwahyu/marineiq/internal/application/correlation"
)

const DefaultIdleTimeout = 30 * time.Minute

// Gauge receives the number of live sessions after every change.
type Gauge interface {
	SetActiveSessions(n int)
}

// StoreConfig for NewStore. NewWorkflow is required.
type StoreConfig struct {
	IdleTimeout time.Duration
	NewWorkflow func() *appcorr.Workflow
	Clock       application.Clock
	Logger      *zap.Logger
	Gauge       Gauge
}

// Store keeps the live sessions and evicts idle ones.
type Store struct {
	cfg StoreConfig

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewStore(cfg StoreConfig) *Store {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = application.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Store{cfg: cfg, sessions: make(map[string]*Session)}
}

// Get returns the session with id and marks it as used.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		sess.touch(s.cfg.Clock.Now())
	}
	return sess, ok
}

// GetOrCreate returns the session with id, or a new one when id is unknown.
// created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.cfg.Clock.Now(), s.cfg.NewWorkflow)
	s.mu.Lock()
	tracked := !s.closed
	if tracked {
		s.sessions[sess.ID] = sess
	}
	n := len(s.sessions)
	s.mu.Unlock()
	if !tracked {
		sess.close()
	}

	s.report(n)
	s.cfg.Logger.Debug("session created", zap.String("session", sess.ID))
	return sess
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the timeout and returns how many went.
func (s *Store) Sweep() int {
	now := s.cfg.Clock.Now()
	var evicted []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.cfg.IdleTimeout {
			evicted = append(evicted, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range evicted {
		sess.close()
	}
	if len(evicted) > 0 {
		s.report(n)
		s.cfg.Logger.Info("idle sessions evicted", zap.Int("evicted", len(evicted)), zap.Int("active", n))
	}
	return len(evicted)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close tears down every session. Sessions created afterwards are born closed.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.close()
	}
	s.report(0)
}

func (s *Store) report(n int) {
	if s.cfg.Gauge != nil {
		s.cfg.Gauge.SetActiveSessions(n)
	}
}
