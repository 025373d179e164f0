package correlation

import (
	"fmt"
	"strings"
	"time"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

// Phase enum
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnalyzing Phase = "analyzing"
)

// Result of one completed analysis. Coefficient is in [-1, 1],
// Significance is the p-value.
type Result struct {
	ID             string          `json:"id"`
	Coefficient    float64         `json:"coefficient"`
	Significance   float64         `json:"significance"`
	Primary        catalog.Dataset `json:"primaryDataset"`
	Correlating    catalog.Dataset `json:"correlatingDataset"`
	Insight        string          `json:"insight"`
	Recommendation string          `json:"recommendation"`
	CompletedAt    time.Time       `json:"completedAt"`
}

// Selection is the pair of dataset ids picked by the user.
type Selection struct {
	Primary     string `json:"primary"`
	Correlating string `json:"correlating"`
}

// Validate checks that both ids are set and differ. It does not consult the catalog.
func (s Selection) Validate() error {
	p, c := strings.TrimSpace(s.Primary), strings.TrimSpace(s.Correlating)
	switch {
	case p == "" && c == "":
		return fmt.Errorf("%w: no datasets selected", ErrInvalidSelection)
	case p == "":
		return fmt.Errorf("%w: primary dataset not selected", ErrInvalidSelection)
	case c == "":
		return fmt.Errorf("%w: correlating dataset not selected", ErrInvalidSelection)
	case p == c:
		return fmt.Errorf("%w: datasets must differ", ErrInvalidSelection)
	}
	return nil
}

// FailureKind enum
type FailureKind string

const (
	FailureInvalidSelection FailureKind = "invalid_selection"
	FailureUnknownDataset   FailureKind = "unknown_dataset"
	FailureAnalysis         FailureKind = "analysis_failed"
)

// Failure is the last rejected submission or failed analysis, kept for display.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Snapshot is an immutable view of a workflow.
type Snapshot struct {
	Phase     Phase     `json:"phase"`
	Selection Selection `json:"selection"`
	Result    *Result   `json:"result,omitempty"`
	Failure   *Failure  `json:"failure,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
	Closed    bool      `json:"closed,omitempty"`
}

func (s Snapshot) Analyzing() bool { return s.Phase == PhaseAnalyzing }

// CanSubmit mirrors the submit control: enabled while idle with two distinct datasets.
func (s Snapshot) CanSubmit() bool {
	return !s.Closed && s.Phase == PhaseIdle && s.Selection.Validate() == nil
}
