package analysis

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	domain "github.com/bryanwahyu/marineiq/internal/domain/correlation"
)

const (
	DefaultLatency = 2 * time.Second

	coefficient  = 0.73
	significance = 0.001
)

// Simulated stands in for a real correlation engine: it waits, then reports
// a fixed strong positive correlation for any pair.
type Simulated struct {
	Latency time.Duration
	// Jitter adds up to this much random delay on top of Latency.
	Jitter time.Duration
	Now    func() time.Time
}

func (s *Simulated) delay() time.Duration {
	d := s.Latency
	if s.Jitter > 0 {
		d += rand.N(s.Jitter)
	}
	return d
}

func (s *Simulated) Analyze(ctx context.Context, primary, correlating catalog.Dataset) (domain.Result, error) {
	timer := time.NewTimer(s.delay())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrCancelled, ctx.Err())
	case <-timer.C:
	}

	// double-check, callers should never get here with a bad pair
	if primary.ID == "" || correlating.ID == "" || primary.ID == correlating.ID {
		return domain.Result{}, fmt.Errorf("%w: %q vs %q", domain.ErrInvalidSelection, primary.ID, correlating.ID)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return domain.Result{
		ID:             uuid.NewString(),
		Coefficient:    coefficient,
		Significance:   significance,
		Primary:        primary,
		Correlating:    correlating,
		Insight:        domain.Narrative(primary, correlating),
		Recommendation: domain.Recommendation,
		CompletedAt:    now(),
	}, nil
}
