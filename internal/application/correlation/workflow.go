package correlation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/marineiq/internal/application"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	domain "github.com/bryanwahyu/marineiq/internal/domain/correlation"
)

// Analysis outcomes reported to the Observer.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeRejected  = "rejected"
)

// Observer receives one call per submission outcome.
type Observer interface {
	ObserveAnalysis(outcome string, d time.Duration)
}

// Deps for NewWorkflow. Catalog and Analyzer are required.
type Deps struct {
	Catalog  catalog.Repository
	Analyzer domain.Analyzer
	Clock    application.Clock
	Logger   *zap.Logger
	Observer Observer
}

// handle identifies one in-flight analysis. A completion is applied only
// while its handle is still the workflow's current one.
type handle struct {
	gen    uint64
	cancel context.CancelFunc
}

// Workflow is the dataset selection → analysis → result state machine.
// It is safe for concurrent use.
type Workflow struct {
	deps Deps

	mu        sync.Mutex
	phase     domain.Phase
	sel       domain.Selection
	result    *domain.Result
	failure   *domain.Failure
	startedAt time.Time
	inflight  *handle
	gen       uint64
	closed    bool

	wg sync.WaitGroup
}

func NewWorkflow(deps Deps) *Workflow {
	if deps.Clock == nil {
		deps.Clock = application.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Workflow{deps: deps, phase: domain.PhaseIdle}
}

// SelectPrimary sets the primary dataset. Picking the dataset currently
// chosen as correlating clears the correlating choice.
func (w *Workflow) SelectPrimary(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return err
	}
	w.setPrimaryLocked(strings.TrimSpace(id))
	return nil
}

// SelectCorrelating sets the correlating dataset. It must differ from the primary.
func (w *Workflow) SelectCorrelating(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return err
	}
	return w.setCorrelatingLocked(strings.TrimSpace(id))
}

// Select applies both choices at once, primary first.
func (w *Workflow) Select(sel domain.Selection) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editableLocked(); err != nil {
		return err
	}
	p, c := strings.TrimSpace(sel.Primary), strings.TrimSpace(sel.Correlating)
	if p != "" && p == c {
		return fmt.Errorf("%w: datasets must differ", domain.ErrInvalidSelection)
	}
	w.setPrimaryLocked(p)
	return w.setCorrelatingLocked(c)
}

func (w *Workflow) editableLocked() error {
	if w.closed {
		return domain.ErrClosed
	}
	if w.phase == domain.PhaseAnalyzing {
		return domain.ErrBusy
	}
	return nil
}

func (w *Workflow) setPrimaryLocked(id string) {
	if w.sel.Primary == id {
		return
	}
	w.sel.Primary = id
	if id != "" && w.sel.Correlating == id {
		w.sel.Correlating = ""
	}
	w.clearOutcomeLocked()
}

func (w *Workflow) setCorrelatingLocked(id string) error {
	if w.sel.Correlating == id {
		return nil
	}
	if id != "" && id == w.sel.Primary {
		return fmt.Errorf("%w: correlating dataset equals primary %q", domain.ErrInvalidSelection, id)
	}
	w.sel.Correlating = id
	w.clearOutcomeLocked()
	return nil
}

// a changed selection makes the previous result stale
func (w *Workflow) clearOutcomeLocked() {
	w.result = nil
	w.failure = nil
}

// CorrelatingOptions lists the catalog datasets minus the selected primary.
func (w *Workflow) CorrelatingOptions(ctx context.Context) ([]catalog.Dataset, error) {
	w.mu.Lock()
	primary := w.sel.Primary
	w.mu.Unlock()

	ds, err := w.deps.Catalog.Datasets(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ExcludeDataset(ds, primary), nil
}

// Submit schedules one analysis of the current selection.
// While an analysis is pending it does nothing and reports started=false.
// Invalid or unknown selections leave the workflow idle with its result untouched.
// Datasets are resolved without holding the lock; a selection edited meanwhile
// is resolved again.
func (w *Workflow) Submit(ctx context.Context) (bool, error) {
	for {
		sel, pending, err := w.pendingSelection()
		if err != nil || pending {
			return false, err
		}
		primary, correlating, err := w.resolve(ctx, sel)

		w.mu.Lock()
		switch {
		case w.closed:
			w.mu.Unlock()
			return false, domain.ErrClosed
		case w.phase == domain.PhaseAnalyzing:
			w.mu.Unlock()
			return false, nil
		case w.sel != sel:
			w.mu.Unlock()
			continue
		}
		if err != nil {
			w.failure = domain.FailureFrom(err)
			w.mu.Unlock()
			w.observe(OutcomeRejected, 0)
			return false, err
		}
		h := w.startLocked(ctx, primary, correlating)
		w.mu.Unlock()

		w.deps.Logger.Debug("analysis started",
			zap.Uint64("generation", h.gen),
			zap.String("primary", primary.ID),
			zap.String("correlating", correlating.ID),
		)
		return true, nil
	}
}

func (w *Workflow) pendingSelection() (sel domain.Selection, pending bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.Selection{}, false, domain.ErrClosed
	}
	return w.sel, w.phase == domain.PhaseAnalyzing, nil
}

func (w *Workflow) startLocked(ctx context.Context, primary, correlating catalog.Dataset) *handle {
	// the analysis outlives the request that started it
	actx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.gen++
	h := &handle{gen: w.gen, cancel: cancel}
	w.inflight = h
	w.phase = domain.PhaseAnalyzing
	w.failure = nil
	w.startedAt = w.deps.Clock.Now()

	w.wg.Add(1)
	go w.run(actx, h, primary, correlating)
	return h
}

func (w *Workflow) resolve(ctx context.Context, sel domain.Selection) (catalog.Dataset, catalog.Dataset, error) {
	if err := sel.Validate(); err != nil {
		return catalog.Dataset{}, catalog.Dataset{}, err
	}
	p, err := w.lookup(ctx, sel.Primary)
	if err != nil {
		return catalog.Dataset{}, catalog.Dataset{}, err
	}
	c, err := w.lookup(ctx, sel.Correlating)
	if err != nil {
		return catalog.Dataset{}, catalog.Dataset{}, err
	}
	return p, c, nil
}

func (w *Workflow) lookup(ctx context.Context, id string) (catalog.Dataset, error) {
	d, err := w.deps.Catalog.Dataset(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Dataset{}, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, id)
	}
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("lookup dataset %q: %w", id, err)
	}
	return d, nil
}

func (w *Workflow) run(ctx context.Context, h *handle, primary, correlating catalog.Dataset) {
	defer w.wg.Done()
	start := time.Now()
	res, err := w.deps.Analyzer.Analyze(ctx, primary, correlating)
	w.complete(h, res, err, time.Since(start))
}

func (w *Workflow) complete(h *handle, res domain.Result, err error, took time.Duration) {
	w.mu.Lock()
	if w.closed || w.inflight != h {
		w.mu.Unlock()
		w.observe(OutcomeCancelled, took)
		w.deps.Logger.Debug("stale analysis dropped", zap.Uint64("generation", h.gen))
		return
	}
	h.cancel()
	w.inflight = nil
	w.phase = domain.PhaseIdle
	w.startedAt = time.Time{}

	outcome := OutcomeCompleted
	if err != nil {
		outcome = OutcomeFailed
		w.failure = domain.FailureFrom(err)
		if w.failure == nil {
			// analyzer cancelled on its own
			outcome = OutcomeCancelled
		}
	} else {
		if res.CompletedAt.IsZero() {
			res.CompletedAt = w.deps.Clock.Now()
		}
		w.result = &res
		w.failure = nil
	}
	w.mu.Unlock()

	w.observe(outcome, took)
	if err != nil && outcome == OutcomeFailed {
		w.deps.Logger.Warn("analysis failed", zap.Uint64("generation", h.gen), zap.Error(err))
	}
}

func (w *Workflow) observe(outcome string, d time.Duration) {
	if w.deps.Observer != nil {
		w.deps.Observer.ObserveAnalysis(outcome, d)
	}
}

// Close tears the workflow down: a pending analysis is cancelled and its
// result discarded. Close waits for the analysis goroutine and is idempotent.
func (w *Workflow) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		if w.inflight != nil {
			w.inflight.cancel()
			w.inflight = nil
		}
		w.phase = domain.PhaseIdle
		w.startedAt = time.Time{}
		w.result = nil
		w.failure = nil
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Workflow) Snapshot() domain.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := domain.Snapshot{
		Phase:     w.phase,
		Selection: w.sel,
		StartedAt: w.startedAt,
		Closed:    w.closed,
	}
	if w.result != nil {
		r := *w.result
		snap.Result = &r
	}
	if w.failure != nil {
		f := *w.failure
		snap.Failure = &f
	}
	return snap
}
