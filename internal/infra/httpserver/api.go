package httpserver

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
	"github.com/bryanwahyu/marineiq/internal/domain/correlation"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
	"github.com/bryanwahyu/marineiq/internal/infra/charts"
	"github.com/bryanwahyu/marineiq/internal/middleware"
)

// GET /api/v1/dashboard
func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	view, err := r.dashboard.View(req.Context(), sess)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, view)
}

// GET /api/v1/roles
func (r *Router) handleRoles(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"active":   sess.Role(),
		"profiles": roles.Profiles(),
	})
}

// PUT /api/v1/session/role
// Body: {"role": "researcher"}
func (r *Router) handleSetRole(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	role, err := middleware.ValidateRole(body.Role)
	if err != nil {
		return err
	}
	if err := sess.SetRole(role); err != nil {
		return err
	}
	profile, _ := roles.ProfileOf(role)
	return writeJSON(w, http.StatusOK, map[string]any{
		"role":    role,
		"profile": profile,
	})
}

// GET /api/v1/widgets
func (r *Router) handleWidgets(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	role := sess.Role()
	return writeJSON(w, http.StatusOK, map[string]any{
		"role":    role,
		"widgets": r.dashboard.Widgets(role),
	})
}

// GET /api/v1/widgets/{id}/chart.svg
func (r *Router) handleChart(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	widget, err := r.dashboard.Widget(sess.Role(), chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := charts.Render(&buf, widget); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, err = buf.WriteTo(w)
	return err
}

// GET /api/v1/alerts?role=
func (r *Router) handleAlerts(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	role := sess.Role()
	if raw := req.URL.Query().Get("role"); raw != "" {
		if role, err = middleware.ValidateRole(raw); err != nil {
			return err
		}
	}
	alerts, err := r.dashboard.Alerts(req.Context(), role)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, alerts)
}

// GET /api/v1/regions
func (r *Router) handleRegions(w http.ResponseWriter, req *http.Request) error {
	regions, err := r.dashboard.Regions(req.Context(), "")
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, regions)
}

type mapView struct {
	Regions  []dashboard.RegionView `json:"regions"`
	Selected *dashboard.RegionView  `json:"selected"`
}

func (r *Router) mapOf(req *http.Request, sess *dashboard.Session) (mapView, error) {
	regions, err := r.dashboard.Regions(req.Context(), sess.SelectedRegion())
	if err != nil {
		return mapView{}, err
	}
	mv := mapView{Regions: regions}
	for i := range regions {
		if regions[i].Selected {
			mv.Selected = &regions[i]
		}
	}
	return mv, nil
}

// GET /api/v1/map
func (r *Router) handleMap(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	mv, err := r.mapOf(req, sess)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, mv)
}

// PUT /api/v1/map/selection
// Body: {"region": "Indian Ocean"}, empty region clears the selection
func (r *Router) handleSelectRegion(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	var body struct {
		Region string `json:"region"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	name := middleware.SanitizeString(body.Region)
	if err := middleware.ValidateRegionName(name); err != nil {
		return badRequest(err)
	}
	if _, err := r.dashboard.SelectRegion(req.Context(), sess, name); err != nil {
		return err
	}
	mv, err := r.mapOf(req, sess)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, mv)
}

// GET /api/v1/datasets?exclude=
func (r *Router) handleDatasets(w http.ResponseWriter, req *http.Request) error {
	exclude := strings.TrimSpace(req.URL.Query().Get("exclude"))
	if err := middleware.ValidateDatasetID(exclude); err != nil {
		return badRequest(err)
	}
	ds, err := r.dashboard.Datasets(req.Context(), exclude)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, ds)
}

// GET /api/v1/correlation
func (r *Router) handleCorrelation(w http.ResponseWriter, req *http.Request) error {
	return r.writeCorrelation(w, req, http.StatusOK)
}

func (r *Router) writeCorrelation(w http.ResponseWriter, req *http.Request, status int) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	view, err := r.dashboard.Correlation(req.Context(), sess)
	if err != nil {
		return err
	}
	return writeJSON(w, status, view)
}

// PUT /api/v1/correlation/selection
// Body: {"primary": "<dataset id>", "correlating": "<dataset id>"}; omitted fields stay as they are
func (r *Router) handleSelection(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	wf, err := sess.Workflow()
	if err != nil {
		return err
	}
	var body struct {
		Primary     *string `json:"primary"`
		Correlating *string `json:"correlating"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	for _, id := range []*string{body.Primary, body.Correlating} {
		if id == nil {
			continue
		}
		if err := middleware.ValidateDatasetID(strings.TrimSpace(*id)); err != nil {
			return badRequest(err)
		}
	}

	switch {
	case body.Primary != nil && body.Correlating != nil:
		err = wf.Select(correlation.Selection{Primary: *body.Primary, Correlating: *body.Correlating})
	case body.Primary != nil:
		err = wf.SelectPrimary(*body.Primary)
	case body.Correlating != nil:
		err = wf.SelectCorrelating(*body.Correlating)
	}
	if err != nil {
		return err
	}
	return r.writeCorrelation(w, req, http.StatusOK)
}

// POST /api/v1/correlation/analyze
// 202 when an analysis started, 200 when one was already running.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	wf, err := sess.Workflow()
	if err != nil {
		return err
	}
	started, err := wf.Submit(req.Context())
	if err != nil {
		return err
	}
	status := http.StatusOK
	if started {
		status = http.StatusAccepted
	}
	return r.writeCorrelation(w, req, status)
}

// DELETE /api/v1/correlation
func (r *Router) handleResetCorrelation(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	if err := sess.ResetWorkflow(); err != nil {
		return err
	}
	return r.writeCorrelation(w, req, http.StatusOK)
}

// POST /api/v1/assistant
// Body: {"question": "..."}
func (r *Router) handleAssistant(w http.ResponseWriter, req *http.Request) error {
	sess, err := session(req)
	if err != nil {
		return err
	}
	var body struct {
		Question string `json:"question"`
	}
	if err := decode(w, req, &body); err != nil {
		return err
	}
	question, err := middleware.ValidateQuestion(body.Question)
	if err != nil {
		return badRequest(err)
	}
	answer, err := r.assistant.Ask(req.Context(), sess.Role(), question)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, answer)
}
