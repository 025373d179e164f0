package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appassist "github.com/bryanwahyu/marineiq/internal/application/assistant"
	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
	domassist "github.com/bryanwahyu/marineiq/internal/domain/assistant"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	domcorr "github.com/bryanwahyu/marineiq/internal/domain/correlation"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
	"github.com/bryanwahyu/marineiq/internal/domain/widgets"
	"github.com/bryanwahyu/marineiq/internal/infra/charts"
	"github.com/bryanwahyu/marineiq/internal/middleware"
)

// errBadRequest marks malformed input; the router answers 400.
var errBadRequest = errors.New("bad request")

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

// Options for NewRouter. Dashboard and Sessions are required.
type Options struct {
	Dashboard      *dashboard.Service
	Sessions       *dashboard.Store
	Assistant      *appassist.Service
	Limiter        *middleware.RateLimiter
	Health         map[string]middleware.HealthChecker
	AllowedOrigins []string
	SecureCookies  bool
	Logger         *zap.Logger
}

type Router struct {
	dashboard *dashboard.Service
	assistant *appassist.Service
	logger    *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{dashboard: opts.Dashboard, assistant: opts.Assistant, logger: logger}

	throttle := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		throttle = middleware.RateLimit(opts.Limiter)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Metrics)
	mux.Use(middleware.Logging(logger))

	mux.Get("/health", middleware.HealthHandler(opts.Health))
	mux.Get("/readyz", middleware.ReadinessHandler(opts.Health))
	mux.Get("/livez", middleware.LivenessHandler)

	mux.Group(func(rt chi.Router) {
		rt.Use(middleware.Sessions(opts.Sessions, opts.SecureCookies))

		rt.Get("/", r.handlePage)
		rt.Post("/role", r.form(r.submitRole))
		rt.Post("/map/select", r.form(r.submitRegion))
		rt.Post("/correlation/select", r.form(r.submitSelection))
		rt.With(throttle).Post("/correlation/analyze", r.form(r.submitAnalyze))
		rt.Post("/correlation/reset", r.form(r.submitReset))
		rt.With(throttle).Post("/assistant", r.handleAssistantPage)

		rt.Route("/api/v1", func(api chi.Router) {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   origins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				AllowCredentials: false,
				MaxAge:           300,
			}))

			api.Get("/dashboard", r.wrap(r.handleDashboard))
			api.Get("/roles", r.wrap(r.handleRoles))
			api.Put("/session/role", r.wrap(r.handleSetRole))
			api.Get("/widgets", r.wrap(r.handleWidgets))
			api.Get("/widgets/{id}/chart.svg", r.wrap(r.handleChart))
			api.Get("/alerts", r.wrap(r.handleAlerts))
			api.Get("/regions", r.wrap(r.handleRegions))
			api.Get("/map", r.wrap(r.handleMap))
			api.Put("/map/selection", r.wrap(r.handleSelectRegion))
			api.Get("/datasets", r.wrap(r.handleDatasets))
			api.Get("/correlation", r.wrap(r.handleCorrelation))
			api.Put("/correlation/selection", r.wrap(r.handleSelection))
			api.With(throttle).Post("/correlation/analyze", r.wrap(r.handleAnalyze))
			api.Delete("/correlation", r.wrap(r.handleResetCorrelation))
			api.With(throttle).Post("/assistant", r.wrap(r.handleAssistant))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				r.logger.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
			}
			writeError(w, status, err)
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, roles.ErrUnknownRole),
		errors.Is(err, domcorr.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, domcorr.ErrUnknownDataset),
		errors.Is(err, dashboard.ErrUnknownRegion),
		errors.Is(err, widgets.ErrUnknownWidget),
		errors.Is(err, charts.ErrNotChart),
		errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domcorr.ErrBusy),
		errors.Is(err, domcorr.ErrClosed),
		errors.Is(err, dashboard.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrModuleUnavailable):
		return http.StatusForbidden
	case errors.Is(err, domassist.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domassist.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, req *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}

func session(req *http.Request) (*dashboard.Session, error) {
	sess := middleware.SessionFromContext(req.Context())
	if sess == nil {
		return nil, errors.New("no session on request")
	}
	return sess, nil
}
