package dashboard

import (
	"errors"
	"sync"
	"time"

	appcorr "github.com/bryanwahyu/marineiq/internal/application/correlation"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

var (
	ErrUnknownRegion     = errors.New("unknown region")
	ErrModuleUnavailable = errors.New("correlation module is only available to researchers")
	ErrSessionClosed     = errors.New("session closed")
)

// Session is one dashboard: the active role, the map selection and, for
// researchers, the correlation workflow. An evicted session stays readable
// but refuses role and workflow changes with ErrSessionClosed.
type Session struct {
	ID string

	newWorkflow func() *appcorr.Workflow

	mu       sync.Mutex
	role     roles.Role
	region   string
	workflow *appcorr.Workflow
	lastSeen time.Time
	closed   bool
}

func newSession(id string, now time.Time, newWorkflow func() *appcorr.Workflow) *Session {
	return &Session{ID: id, role: roles.Default, lastSeen: now, newWorkflow: newWorkflow}
}

func (s *Session) Role() roles.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Active returns the role together with its workflow, nil unless the role is
// researcher and the session is open.
func (s *Session) Active() (roles.Role, *appcorr.Workflow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role, s.workflow
}

// SetRole is the only way to change the active role. Leaving the researcher
// role closes the workflow, entering it starts a fresh one.
func (s *Session) SetRole(r roles.Role) error {
	if !r.Valid() {
		return roles.ErrUnknownRole
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.role == r {
		return nil
	}
	s.role = r
	if r == roles.Researcher {
		s.workflow = s.newWorkflow()
	} else if s.workflow != nil {
		s.workflow.Close()
		s.workflow = nil
	}
	return nil
}

// Workflow returns the researcher workflow, ErrModuleUnavailable for other
// roles or ErrSessionClosed once evicted.
func (s *Session) Workflow() (*appcorr.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.workflow == nil {
		return nil, ErrModuleUnavailable
	}
	return s.workflow, nil
}

// ResetWorkflow discards the current workflow and starts over.
func (s *Session) ResetWorkflow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.workflow == nil {
		return ErrModuleUnavailable
	}
	s.workflow.Close()
	s.workflow = s.newWorkflow()
	return nil
}

func (s *Session) SelectedRegion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

func (s *Session) setRegion(name string) {
	s.mu.Lock()
	s.region = name
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// close tears down the workflow, if any, and freezes the role.
func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	wf := s.workflow
	s.workflow = nil
	s.mu.Unlock()
	if wf != nil {
		wf.Close()
	}
}
