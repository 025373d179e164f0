package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("brewed"))
}

func TestSessionsIssuesCookieOnce(t *testing.T) {
	store := dashboard.NewStore(dashboard.StoreConfig{})
	defer store.Close()

	var seen *dashboard.Session
	h := Sessions(store, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, seen)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, seen.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	first := seen
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Same(t, first, seen)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, store.Len())
}

func TestSessionsReplacesUnknownCookie(t *testing.T) {
	store := dashboard.NewStore(dashboard.StoreConfig{})
	defer store.Close()

	h := Sessions(store, true)(http.HandlerFunc(okHandler))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "evicted"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "evicted", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}

func TestSessionFromContextEmpty(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))
}

func TestLoggingRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logging(zap.New(core))(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "/brew", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, len("brewed"), fields["bytes"])
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/v1/widgets/{id}", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/widgets/fleet-status", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestTokenBucketRefills(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tb := NewTokenBucket(2, 1, start)

	assert.True(t, tb.allowAt(start))
	assert.True(t, tb.allowAt(start))
	assert.False(t, tb.allowAt(start))
	assert.Greater(t, tb.retryAfter(), time.Duration(0))

	assert.False(t, tb.allowAt(start.Add(500*time.Millisecond)))
	assert.True(t, tb.allowAt(start.Add(1500*time.Millisecond)))
}

func TestRateLimitKeysBySessionAndIP(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(1, 0.5, func() time.Time { return now })
	store := dashboard.NewStore(dashboard.StoreConfig{})
	defer store.Close()

	h := Sessions(store, false)(RateLimit(limiter)(http.HandlerFunc(okHandler)))

	call := func(cookie *http.Cookie, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/correlation/analyze", nil)
		req.RemoteAddr = ip + ":5555"
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := call(nil, "10.0.0.1")
	require.Equal(t, http.StatusTeapot, first.Code)
	cookie := first.Result().Cookies()[0]

	limited := call(cookie, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "2", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), `"error"`)

	assert.Equal(t, http.StatusTeapot, call(cookie, "10.0.0.2").Code)
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(1, 1, func() time.Time { return now })
	limiter.Allow("a")
	limiter.Allow("b")

	now = now.Add(11 * time.Minute)
	limiter.Allow("b")
	assert.Equal(t, 1, limiter.evictIdle(10*time.Minute))
}

func TestRateLimiterStop(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	limiter.Stop()
	limiter.Stop()
	<-limiter.done
}

type checkerFunc func(context.Context) error

func (f checkerFunc) Check(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	healthy := map[string]HealthChecker{"catalog": checkerFunc(func(context.Context) error { return nil })}
	rec := httptest.NewRecorder()
	HealthHandler(healthy)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	broken := map[string]HealthChecker{"catalog": checkerFunc(func(context.Context) error { return errors.New("no datasets") })}
	rec = httptest.NewRecorder()
	HealthHandler(broken)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no datasets")
}

func TestReadinessFollowsChecks(t *testing.T) {
	ok := map[string]HealthChecker{"catalog": checkerFunc(func(context.Context) error { return nil })}
	rec := httptest.NewRecorder()
	ReadinessHandler(ok)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := map[string]HealthChecker{
		"catalog": checkerFunc(func(context.Context) error { return nil }),
		"store":   checkerFunc(func(context.Context) error { return errors.New("bucket gone") }),
	}
	rec = httptest.NewRecorder()
	ReadinessHandler(down)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not ready")
}

func TestValidateRole(t *testing.T) {
	r, err := ValidateRole("  Researcher\x00 ")
	require.NoError(t, err)
	assert.Equal(t, roles.Researcher, r)

	_, err = ValidateRole("admiral")
	assert.ErrorIs(t, err, roles.ErrUnknownRole)
}

func TestValidateIdentifiers(t *testing.T) {
	assert.NoError(t, ValidateDatasetID(""))
	assert.NoError(t, ValidateDatasetID("otolith_cod_north_atlantic"))
	assert.NoError(t, ValidateDatasetID("SST_2024"))
	assert.NoError(t, ValidateDatasetID("cod.otolith"))
	assert.Error(t, ValidateDatasetID("sst\x00north"))
	assert.Error(t, ValidateDatasetID(strings.Repeat("a", catalog.MaxKeyLength+1)))

	assert.NoError(t, ValidateRegionName(""))
	assert.NoError(t, ValidateRegionName("North Atlantic Ocean"))
	assert.NoError(t, ValidateRegionName("Gulf of Maine (East)"))
	assert.NoError(t, ValidateRegionName("Area 51"))
	assert.Error(t, ValidateRegionName("North\nAtlantic"))
}

func TestValidateQuestion(t *testing.T) {
	q, err := ValidateQuestion("  Where is cod growth slowing?\x07 ")
	require.NoError(t, err)
	assert.Equal(t, "Where is cod growth slowing?", q)

	_, err = ValidateQuestion(" \x00 ")
	assert.Error(t, err)

	_, err = ValidateQuestion(strings.Repeat("ö", MaxQuestionLength+1))
	assert.Error(t, err)

	_, err = ValidateQuestion(strings.Repeat("ö", MaxQuestionLength))
	assert.NoError(t, err)
}
