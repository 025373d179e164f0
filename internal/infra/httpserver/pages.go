package httpserver

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	appassist "github.com/bryanwahyu/marineiq/internal/application/assistant"
	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/correlation"
	"github.com/bryanwahyu/marineiq/internal/middleware"
)

// ── Template helpers ──────────────────────────────────────────────────────────

var funcMap = template.FuncMap{
	"severityColor": func(s catalog.Severity) string {
		switch s {
		case catalog.SeverityCritical:
			return "#f87171"
		case catalog.SeverityModerate:
			return "#f59e0b"
		default:
			return "#58a6ff"
		}
	},
	"tierColor": func(t catalog.ActivityTier) string {
		switch t {
		case catalog.TierHigh:
			return "#f87171"
		case catalog.TierElevated:
			return "#f59e0b"
		case catalog.TierModerate:
			return "#56d364"
		default:
			return "#58a6ff"
		}
	},
	"toneColor": func(tone string) string {
		switch tone {
		case "green":
			return "#56d364"
		case "orange":
			return "#f59e0b"
		case "purple":
			return "#a78bfa"
		case "blue":
			return "#58a6ff"
		}
		return "#f0f6fc"
	},
	"coef": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pvalue": func(v float64) string {
		if v <= 0.001 {
			return "p < 0.001"
		}
		return fmt.Sprintf("p = %.3f", v)
	},
}

var pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplDashboard))

type pageData struct {
	dashboard.View
	Error            string
	AssistantEnabled bool
	Question         string
	Answer           *appassist.Answer
}

// Refresh keeps the page polling while an analysis is pending.
func (p pageData) Refresh() bool {
	return p.Correlation != nil && p.Correlation.Analyzing()
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, data pageData) {
	sess, err := session(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	view, err := r.dashboard.View(req.Context(), sess)
	if err != nil {
		r.logger.Error("dashboard view", zap.Error(err))
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
		return
	}
	data.View = view
	data.AssistantEnabled = r.assistant.Configured()

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		r.logger.Error("template error", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// GET /
func (r *Router) handlePage(w http.ResponseWriter, req *http.Request) {
	r.render(w, req, pageData{Error: middleware.SanitizeString(req.URL.Query().Get("error"))})
}

// form runs a form action and redirects back to the dashboard, carrying the
// error message in the query string when it fails.
func (r *Router) form(h func(*http.Request, *dashboard.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		target := "/"
		sess, err := session(req)
		if err == nil {
			if err = req.ParseForm(); err != nil {
				err = badRequest(err)
			} else {
				err = h(req, sess)
			}
		}
		if err != nil {
			status := statusFor(err)
			msg := err.Error()
			if status == http.StatusInternalServerError {
				r.logger.Error("form action failed", zap.String("path", req.URL.Path), zap.Error(err))
				msg = "internal error"
			}
			target = "/?error=" + url.QueryEscape(msg)
		}
		http.Redirect(w, req, target, http.StatusSeeOther)
	}
}

// POST /role
func (r *Router) submitRole(req *http.Request, sess *dashboard.Session) error {
	role, err := middleware.ValidateRole(req.PostForm.Get("role"))
	if err != nil {
		return err
	}
	return sess.SetRole(role)
}

// POST /map/select
func (r *Router) submitRegion(req *http.Request, sess *dashboard.Session) error {
	name := middleware.SanitizeString(req.PostForm.Get("region"))
	if err := middleware.ValidateRegionName(name); err != nil {
		return badRequest(err)
	}
	_, err := r.dashboard.SelectRegion(req.Context(), sess, name)
	return err
}

// POST /correlation/select
func (r *Router) submitSelection(req *http.Request, sess *dashboard.Session) error {
	wf, err := sess.Workflow()
	if err != nil {
		return err
	}
	sel := correlation.Selection{
		Primary:     strings.TrimSpace(req.PostForm.Get("primary")),
		Correlating: strings.TrimSpace(req.PostForm.Get("correlating")),
	}
	for _, id := range []string{sel.Primary, sel.Correlating} {
		if err := middleware.ValidateDatasetID(id); err != nil {
			return badRequest(err)
		}
	}
	// picking the current correlating dataset as primary drops the correlating choice
	if sel.Primary != "" && sel.Primary == sel.Correlating {
		return wf.SelectPrimary(sel.Primary)
	}
	return wf.Select(sel)
}

// POST /correlation/analyze
func (r *Router) submitAnalyze(req *http.Request, sess *dashboard.Session) error {
	wf, err := sess.Workflow()
	if err != nil {
		return err
	}
	_, err = wf.Submit(req.Context())
	if errors.Is(err, correlation.ErrInvalidSelection) || errors.Is(err, correlation.ErrUnknownDataset) {
		// already recorded as the workflow failure, shown by the module itself
		return nil
	}
	return err
}

// POST /correlation/reset
func (r *Router) submitReset(_ *http.Request, sess *dashboard.Session) error {
	return sess.ResetWorkflow()
}

// POST /assistant
func (r *Router) handleAssistantPage(w http.ResponseWriter, req *http.Request) {
	data := pageData{}
	sess, err := session(req)
	if err == nil {
		if err = req.ParseForm(); err == nil {
			data.Question = req.PostForm.Get("question")
			var q string
			if q, err = middleware.ValidateQuestion(data.Question); err == nil {
				var answer appassist.Answer
				answer, err = r.assistant.Ask(req.Context(), sess.Role(), q)
				if err == nil {
					data.Answer = &answer
				}
			}
		}
	}
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			r.logger.Error("assistant failed", zap.Error(err))
			data.Error = "assistant unavailable"
		} else {
			data.Error = err.Error()
		}
	}
	r.render(w, req, data)
}
