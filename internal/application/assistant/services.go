package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/marineiq/internal/application"
	domain "github.com/bryanwahyu/marineiq/internal/domain/assistant"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// Observer receives one call per question with its outcome.
type Observer interface {
	ObserveAssistant(outcome string)
}

type Service struct {
	Client   domain.Client
	Catalog  catalog.Repository
	Clock    application.Clock
	Observer Observer
}

type Answer struct {
	Role            roles.Role `json:"role"`
	Question        string     `json:"question"`
	Answer          string     `json:"answer"`
	RelatedDatasets []string   `json:"relatedDatasets"`
	AnsweredAt      time.Time  `json:"answeredAt"`
}

func (s *Service) Configured() bool { return s != nil && s.Client != nil }

// Ask answers question for a dashboard in role. The model sees the catalog
// with alerts narrowed to the role.
func (s *Service) Ask(ctx context.Context, role roles.Role, question string) (Answer, error) {
	if !s.Configured() {
		s.observe("unconfigured")
		return Answer{}, domain.ErrNotConfigured
	}
	c, err := catalog.Load(ctx, s.Catalog)
	if err != nil {
		s.observe("error")
		return Answer{}, err
	}
	c.Alerts = catalog.FilterAlerts(c.Alerts, role)

	reply, err := s.Client.Ask(ctx, domain.Request{Role: role, Question: question, Catalog: c})
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			s.observe("quota")
		} else {
			s.observe("error")
		}
		return Answer{}, fmt.Errorf("assistant: %w", err)
	}
	s.observe("ok")

	now := time.Now()
	if s.Clock != nil {
		now = s.Clock.Now()
	}
	related := make([]string, 0, len(reply.RelatedDatasets))
	for _, id := range reply.RelatedDatasets {
		// models invent ids now and then
		if _, ok := c.Dataset(id); ok {
			related = append(related, id)
		}
	}
	return Answer{Role: role, Question: question, Answer: reply.Answer, RelatedDatasets: related, AnsweredAt: now}, nil
}

func (s *Service) observe(outcome string) {
	if s != nil && s.Observer != nil {
		s.Observer.ObserveAssistant(outcome)
	}
}
