package dashboard

import (
	"context"
	"fmt"
	"strings"

	appcorr "github.com/bryanwahyu/marineiq/internal/application/correlation"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	domcorr "github.com/bryanwahyu/marineiq/internal/domain/correlation"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
	"github.com/bryanwahyu/marineiq/internal/domain/widgets"
)

// Service implements the read side of the dashboard on top of a catalog.
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Catalog catalog.Repository
}

// RegionView is a region as drawn on the map.
type RegionView struct {
	catalog.OceanRegion
	Tier     catalog.ActivityTier `json:"tier"`
	Selected bool                 `json:"selected"`
}

// AlertsView is the alerts panel for one role.
type AlertsView struct {
	Role   roles.Role      `json:"role"`
	Active int             `json:"active"`
	Alerts []catalog.Alert `json:"alerts"`
}

// CorrelationView is the researcher module: workflow state plus the option lists.
type CorrelationView struct {
	domcorr.Snapshot
	Datasets           []catalog.Dataset `json:"datasets"`
	CorrelatingOptions []catalog.Dataset `json:"correlatingOptions"`
}

// View is everything the dashboard page renders for one session.
type View struct {
	SessionID   string           `json:"sessionId"`
	Role        roles.Role       `json:"role"`
	Profile     roles.Profile    `json:"profile"`
	Profiles    []roles.Profile  `json:"profiles"`
	Regions     []RegionView     `json:"regions"`
	Selected    *RegionView      `json:"selectedRegion,omitempty"`
	Widgets     []widgets.Widget `json:"widgets"`
	Alerts      AlertsView       `json:"alerts"`
	Correlation *CorrelationView `json:"correlation,omitempty"`
}

func (s *Service) Alerts(ctx context.Context, role roles.Role) (AlertsView, error) {
	all, err := s.Catalog.Alerts(ctx)
	if err != nil {
		return AlertsView{}, err
	}
	filtered := catalog.FilterAlerts(all, role)
	return AlertsView{Role: role, Active: len(filtered), Alerts: filtered}, nil
}

// Regions lists the map regions, marking the one named selected.
func (s *Service) Regions(ctx context.Context, selected string) ([]RegionView, error) {
	rs, err := s.Catalog.Regions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RegionView, len(rs))
	for i, r := range rs {
		out[i] = RegionView{OceanRegion: r, Tier: r.Tier(), Selected: selected != "" && r.Name == selected}
	}
	return out, nil
}

// SelectRegion stores the map selection of sess. An empty name clears it.
func (s *Service) SelectRegion(ctx context.Context, sess *Session, name string) (*RegionView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		sess.setRegion("")
		return nil, nil
	}
	rs, err := s.Catalog.Regions(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rs {
		if r.Name == name {
			sess.setRegion(name)
			return &RegionView{OceanRegion: r, Tier: r.Tier(), Selected: true}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}

// Datasets lists the catalog datasets, without exclude when set.
func (s *Service) Datasets(ctx context.Context, exclude string) ([]catalog.Dataset, error) {
	ds, err := s.Catalog.Datasets(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ExcludeDataset(ds, exclude), nil
}

func (s *Service) Widgets(role roles.Role) []widgets.Widget {
	return widgets.ForRole(role)
}

func (s *Service) Widget(role roles.Role, id string) (widgets.Widget, error) {
	return widgets.Find(role, id)
}

// Correlation returns the researcher module of sess, or ErrModuleUnavailable.
func (s *Service) Correlation(ctx context.Context, sess *Session) (*CorrelationView, error) {
	wf, err := sess.Workflow()
	if err != nil {
		return nil, err
	}
	return s.correlationOf(ctx, wf)
}

func (s *Service) correlationOf(ctx context.Context, wf *appcorr.Workflow) (*CorrelationView, error) {
	ds, err := s.Catalog.Datasets(ctx)
	if err != nil {
		return nil, err
	}
	snap := wf.Snapshot()
	return &CorrelationView{
		Snapshot:           snap,
		Datasets:           ds,
		CorrelatingOptions: catalog.ExcludeDataset(ds, snap.Selection.Primary),
	}, nil
}

// View assembles the whole dashboard of sess.
func (s *Service) View(ctx context.Context, sess *Session) (View, error) {
	// role and workflow are read together; a concurrent role change shows up
	// on the next render
	role, wf := sess.Active()
	profile, _ := roles.ProfileOf(role)

	regions, err := s.Regions(ctx, sess.SelectedRegion())
	if err != nil {
		return View{}, fmt.Errorf("regions: %w", err)
	}
	alerts, err := s.Alerts(ctx, role)
	if err != nil {
		return View{}, fmt.Errorf("alerts: %w", err)
	}

	v := View{
		SessionID: sess.ID,
		Role:      role,
		Profile:   profile,
		Profiles:  roles.Profiles(),
		Regions:   regions,
		Widgets:   s.Widgets(role),
		Alerts:    alerts,
	}
	for i := range regions {
		if regions[i].Selected {
			v.Selected = &regions[i]
		}
	}
	if wf != nil {
		cv, err := s.correlationOf(ctx, wf)
		if err != nil {
			return View{}, fmt.Errorf("correlation: %w", err)
		}
		v.Correlation = cv
	}
	return v, nil
}
