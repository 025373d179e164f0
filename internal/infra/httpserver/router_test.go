package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	appassist "github.com/bryanwahyu/marineiq/internal/application/assistant"
	appcorr "github.com/bryanwahyu/marineiq/internal/application/correlation"
	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
	domassist "github.com/bryanwahyu/marineiq/internal/domain/assistant"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	domcorr "github.com/bryanwahyu/marineiq/internal/domain/correlation"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
	"github.com/bryanwahyu/marineiq/internal/domain/widgets"
	"github.com/bryanwahyu/marineiq/internal/infra/analysis"
	infracat "github.com/bryanwahyu/marineiq/internal/infra/catalog"
	"github.com/bryanwahyu/marineiq/internal/infra/charts"
	"github.com/bryanwahyu/marineiq/internal/middleware"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gateAnalyzer finishes once release is closed.
type gateAnalyzer struct{ release chan struct{} }

func (g *gateAnalyzer) Analyze(ctx context.Context, p, c catalog.Dataset) (domcorr.Result, error) {
	select {
	case <-ctx.Done():
		return domcorr.Result{}, domcorr.ErrCancelled
	case <-g.release:
	}
	return domcorr.Result{ID: "r-1", Coefficient: 0.73, Significance: 0.001, Primary: p, Correlating: c}, nil
}

type fakeAssistant struct {
	reply domassist.Reply
	err   error
	got   domassist.Request
}

func (f *fakeAssistant) Ask(_ context.Context, req domassist.Request) (domassist.Reply, error) {
	f.got = req
	return f.reply, f.err
}

type harness struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newHarness(t *testing.T, analyzer domcorr.Analyzer, client domassist.Client) *harness {
	t.Helper()
	return newHarnessFor(t, infracat.NewBuiltin(), analyzer, client)
}

func newHarnessFor(t *testing.T, cat *infracat.Memory, analyzer domcorr.Analyzer, client domassist.Client) *harness {
	t.Helper()
	store := dashboard.NewStore(dashboard.StoreConfig{
		NewWorkflow: func() *appcorr.Workflow {
			return appcorr.NewWorkflow(appcorr.Deps{Catalog: cat, Analyzer: analyzer})
		},
	})
	t.Cleanup(store.Close)

	var assistant *appassist.Service
	if client != nil {
		assistant = &appassist.Service{Client: client, Catalog: cat}
	}
	h := NewRouter(Options{
		Dashboard: &dashboard.Service{Catalog: cat},
		Sessions:  store,
		Assistant: assistant,
		Health:    map[string]middleware.HealthChecker{"catalog": cat},
		Logger:    zaptest.NewLogger(t),
	})
	return &harness{t: t, handler: h}
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return h.send(req)
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.send(req)
}

func (h *harness) send(req *http.Request) *httptest.ResponseRecorder {
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			h.cookie = c
		}
	}
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (h *harness) becomeResearcher() {
	h.t.Helper()
	rec := h.do(http.MethodPut, "/api/v1/session/role", `{"role":"researcher"}`)
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDashboardPage(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	rec := h.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, h.cookie)
	body := rec.Body.String()
	assert.Contains(t, body, "Global Ocean Intelligence Platform")
	assert.Contains(t, body, "Fisheries Management Dashboard")
	assert.Contains(t, body, "/api/v1/widgets/top-species/chart.svg")
	assert.NotContains(t, body, "Cross-Disciplinary Correlation Analysis")
	assert.NotContains(t, body, "AI Ocean Assistant")
}

func TestRoleFormSwitchesDashboard(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)
	h.do(http.MethodGet, "/", "")

	rec := h.post("/role", url.Values{"role": {"researcher"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := h.do(http.MethodGet, "/", "").Body.String()
	assert.Contains(t, body, "Scientific Research Workbench")
	assert.Contains(t, body, "Cross-Disciplinary Correlation Analysis")

	rec = h.post("/role", url.Values{"role": {"admiral"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/?error="))
}

func TestRolesAPI(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	got := decodeBody[struct {
		Active   roles.Role      `json:"active"`
		Profiles []roles.Profile `json:"profiles"`
	}](t, h.do(http.MethodGet, "/api/v1/roles", ""))
	assert.Equal(t, roles.Fisheries, got.Active)
	assert.Len(t, got.Profiles, 3)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, "/api/v1/session/role", `{"role":"admiral"}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, "/api/v1/session/role", `{"rank":"admiral"}`).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/v1/session/role", `{"role":"Biodiversity"}`).Code)

	widgetsResp := decodeBody[struct {
		Role    roles.Role       `json:"role"`
		Widgets []widgets.Widget `json:"widgets"`
	}](t, h.do(http.MethodGet, "/api/v1/widgets", ""))
	assert.Equal(t, roles.Biodiversity, widgetsResp.Role)
	assert.Len(t, widgetsResp.Widgets, 3)
}

func TestAlertsFilteredByRole(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	own := decodeBody[dashboard.AlertsView](t, h.do(http.MethodGet, "/api/v1/alerts", ""))
	assert.Equal(t, roles.Fisheries, own.Role)
	assert.Equal(t, 3, own.Active)

	other := decodeBody[dashboard.AlertsView](t, h.do(http.MethodGet, "/api/v1/alerts?role=biodiversity", ""))
	assert.Equal(t, 5, other.Active)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/alerts?role=pirate", "").Code)
}

func TestMapSelection(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	rec := h.do(http.MethodPut, "/api/v1/map/selection", `{"region":"Indian Ocean"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	mv := decodeBody[mapView](t, rec)
	require.NotNil(t, mv.Selected)
	assert.Equal(t, "Indian Ocean", mv.Selected.Name)
	assert.Equal(t, catalog.TierHigh, mv.Selected.Tier)

	// role changes leave the map alone
	h.becomeResearcher()
	mv = decodeBody[mapView](t, h.do(http.MethodGet, "/api/v1/map", ""))
	require.NotNil(t, mv.Selected)
	assert.Equal(t, "Indian Ocean", mv.Selected.Name)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPut, "/api/v1/map/selection", `{"region":"Atlantis"}`).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPut, "/api/v1/map/selection", `{"region":"<b>"}`).Code)
	long := fmt.Sprintf(`{"region":%q}`, strings.Repeat("x", catalog.MaxKeyLength+1))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, "/api/v1/map/selection", long).Code)

	mv = decodeBody[mapView](t, h.do(http.MethodPut, "/api/v1/map/selection", `{"region":""}`))
	assert.Nil(t, mv.Selected)

	regions := decodeBody[[]dashboard.RegionView](t, h.do(http.MethodGet, "/api/v1/regions", ""))
	assert.Len(t, regions, 7)
}

func TestDatasetsExclude(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	all := decodeBody[[]catalog.Dataset](t, h.do(http.MethodGet, "/api/v1/datasets", ""))
	assert.Len(t, all, 6)

	rest := decodeBody[[]catalog.Dataset](t, h.do(http.MethodGet, "/api/v1/datasets?exclude=sst_north_pacific", ""))
	assert.Len(t, rest, 5)
	for _, d := range rest {
		assert.NotEqual(t, "sst_north_pacific", d.ID)
	}
}

func TestCatalogKeysOutsideBuiltinShape(t *testing.T) {
	cat, err := infracat.NewMemory(catalog.Catalog{
		Datasets: []catalog.Dataset{
			{ID: "SST_2024", Name: "SST 2024", Category: catalog.CategoryEnvironmental},
			{ID: "cod.otolith", Name: "Cod otoliths", Category: catalog.CategoryOtolith},
		},
		Regions: []catalog.OceanRegion{
			{Name: "Gulf of Maine (East)", FishActivity: 70},
			{Name: "Area 51", FishActivity: 5},
		},
	})
	require.NoError(t, err)
	h := newHarnessFor(t, cat, &analysis.Simulated{}, nil)

	rec := h.do(http.MethodPut, "/api/v1/map/selection", `{"region":"Gulf of Maine (East)"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	mv := decodeBody[mapView](t, rec)
	require.NotNil(t, mv.Selected)
	assert.Equal(t, "Gulf of Maine (East)", mv.Selected.Name)

	rec = h.post("/map/select", url.Values{"region": {"Area 51"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rest := decodeBody[[]catalog.Dataset](t, h.do(http.MethodGet, "/api/v1/datasets?exclude=SST_2024", ""))
	require.Len(t, rest, 1)
	assert.Equal(t, "cod.otolith", rest[0].ID)

	h.becomeResearcher()
	rec = h.do(http.MethodPut, "/api/v1/correlation/selection", `{"primary":"cod.otolith","correlating":"SST_2024"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeBody[dashboard.CorrelationView](t, rec)
	assert.Equal(t, "cod.otolith", view.Selection.Primary)
	assert.Equal(t, "SST_2024", view.Selection.Correlating)

	rec = h.post("/correlation/select", url.Values{"primary": {"SST_2024"}, "correlating": {"cod.otolith"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// well-formed but absent ids reach the lookup
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPut, "/api/v1/map/selection", `{"region":"Atlantis (Lost)"}`).Code)
}

func TestChartSVG(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	rec := h.do(http.MethodGet, "/api/v1/widgets/top-species/chart.svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/widgets/fleet-status/chart.svg", "").Code)
	// widgets of other roles are not visible
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/widgets/multi-parameter/chart.svg", "").Code)
}

func TestCorrelationForbiddenOutsideResearcher(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/v1/correlation", "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/api/v1/correlation/analyze", "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/api/v1/correlation", "").Code)
}

func TestCorrelationLifecycle(t *testing.T) {
	gate := &gateAnalyzer{release: make(chan struct{})}
	h := newHarness(t, gate, nil)
	h.becomeResearcher()

	rec := h.do(http.MethodPost, "/api/v1/correlation/analyze", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPut, "/api/v1/correlation/selection", `{"primary":"otolith_cod_north_atlantic","correlating":"otolith_cod_north_atlantic"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPut, "/api/v1/correlation/selection", `{"primary":"otolith_cod_north_atlantic"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[dashboard.CorrelationView](t, rec)
	assert.Len(t, view.CorrelatingOptions, 5)
	assert.False(t, view.CanSubmit())

	rec = h.do(http.MethodPut, "/api/v1/correlation/selection", `{"correlating":"sst_north_pacific"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/correlation/analyze", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, decodeBody[dashboard.CorrelationView](t, rec).Analyzing())

	// a second submit while pending is a no-op
	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/v1/correlation/analyze", "").Code)
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPut, "/api/v1/correlation/selection", `{"primary":"sst_north_pacific"}`).Code)

	page := h.do(http.MethodGet, "/", "").Body.String()
	assert.Contains(t, page, `http-equiv="refresh"`)

	close(gate.release)
	require.Eventually(t, func() bool {
		v := decodeBody[dashboard.CorrelationView](t, h.do(http.MethodGet, "/api/v1/correlation", ""))
		return v.Result != nil
	}, time.Second, 5*time.Millisecond)

	view = decodeBody[dashboard.CorrelationView](t, h.do(http.MethodGet, "/api/v1/correlation", ""))
	assert.Equal(t, domcorr.PhaseIdle, view.Phase)
	assert.Equal(t, "otolith_cod_north_atlantic", view.Result.Primary.ID)
	assert.Equal(t, "sst_north_pacific", view.Result.Correlating.ID)

	rec = h.do(http.MethodDelete, "/api/v1/correlation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[dashboard.CorrelationView](t, rec)
	assert.Nil(t, view.Result)
	assert.Empty(t, view.Selection.Primary)
}

func TestUnknownDatasetSelection(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{release: make(chan struct{})}, nil)
	h.becomeResearcher()

	rec := h.do(http.MethodPut, "/api/v1/correlation/selection", `{"primary":"kelp_forest","correlating":"sst_north_pacific"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.do(http.MethodPost, "/api/v1/correlation/analyze", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	view := decodeBody[dashboard.CorrelationView](t, h.do(http.MethodGet, "/api/v1/correlation", ""))
	require.NotNil(t, view.Failure)
	assert.Equal(t, domcorr.FailureUnknownDataset, view.Failure.Kind)
	assert.Equal(t, domcorr.PhaseIdle, view.Phase)
}

func TestSimulatedAnalysisThroughForms(t *testing.T) {
	h := newHarness(t, &analysis.Simulated{Latency: 20 * time.Millisecond}, nil)
	h.post("/role", url.Values{"role": {"researcher"}})

	rec := h.post("/correlation/select", url.Values{
		"primary":     {"edna_coral_indo_pacific"},
		"correlating": {"sst_north_pacific"},
	})
	require.Equal(t, "/", rec.Header().Get("Location"))
	rec = h.post("/correlation/analyze", nil)
	require.Equal(t, "/", rec.Header().Get("Location"))

	require.Eventually(t, func() bool {
		return strings.Contains(h.do(http.MethodGet, "/", "").Body.String(), "r = 0.73")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, h.do(http.MethodGet, "/", "").Body.String(), "p &lt; 0.001")
}

func TestRoleChangeCancelsPendingAnalysis(t *testing.T) {
	gate := &gateAnalyzer{release: make(chan struct{})}
	h := newHarness(t, gate, nil)
	h.becomeResearcher()
	h.do(http.MethodPut, "/api/v1/correlation/selection", `{"primary":"otolith_cod_north_atlantic","correlating":"sst_north_pacific"}`)
	require.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/api/v1/correlation/analyze", "").Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/v1/session/role", `{"role":"fisheries"}`).Code)
	h.becomeResearcher()

	view := decodeBody[dashboard.CorrelationView](t, h.do(http.MethodGet, "/api/v1/correlation", ""))
	assert.Equal(t, domcorr.PhaseIdle, view.Phase)
	assert.Nil(t, view.Result)
	assert.Empty(t, view.Selection.Primary)
}

func TestAssistant(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)
	rec := h.do(http.MethodPost, "/api/v1/assistant", `{"question":"Where is cod growth slowing?"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	fake := &fakeAssistant{reply: domassist.Reply{
		Answer:          "Cod growth is slowing in the North Atlantic.",
		RelatedDatasets: []string{"otolith_cod_north_atlantic", "made_up"},
	}}
	h = newHarness(t, &gateAnalyzer{}, fake)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/v1/assistant", `{"question":"   "}`).Code)

	rec = h.do(http.MethodPost, "/api/v1/assistant", `{"question":"Where is cod growth slowing?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	answer := decodeBody[appassist.Answer](t, rec)
	assert.Equal(t, []string{"otolith_cod_north_atlantic"}, answer.RelatedDatasets)
	assert.Equal(t, roles.Fisheries, fake.got.Role)
	assert.Len(t, fake.got.Catalog.Alerts, 3)

	fake.err = fmt.Errorf("provider: %w", domassist.ErrQuotaExceeded)
	assert.Equal(t, http.StatusTooManyRequests, h.do(http.MethodPost, "/api/v1/assistant", `{"question":"again?"}`).Code)

	fake.err = nil
	page := h.post("/assistant", url.Values{"question": {"Any coral alerts?"}})
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Cod growth is slowing in the North Atlantic.")
}

func TestHealthEndpoints(t *testing.T) {
	h := newHarness(t, &gateAnalyzer{}, nil)

	rec := h.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"catalog"`)
	assert.Nil(t, h.cookie)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, "ok", h.do(http.MethodGet, "/livez", "").Body.String())
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		badRequest(errors.New("x")):                       http.StatusBadRequest,
		roles.ErrUnknownRole:                              http.StatusBadRequest,
		domcorr.ErrInvalidSelection:                       http.StatusBadRequest,
		fmt.Errorf("wrap: %w", domcorr.ErrUnknownDataset): http.StatusNotFound,
		dashboard.ErrUnknownRegion:                        http.StatusNotFound,
		widgets.ErrUnknownWidget:                          http.StatusNotFound,
		charts.ErrNotChart:                                http.StatusNotFound,
		domcorr.ErrBusy:                                   http.StatusConflict,
		dashboard.ErrSessionClosed:                        http.StatusConflict,
		dashboard.ErrModuleUnavailable:                    http.StatusForbidden,
		fmt.Errorf("a: %w", domassist.ErrQuotaExceeded):   http.StatusTooManyRequests,
		domassist.ErrNotConfigured:                        http.StatusServiceUnavailable,
		errors.New("disk on fire"):                        http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
