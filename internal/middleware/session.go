package middleware

import (
	"context"
	"net/http"

	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionCookie names the cookie carrying the dashboard session id.
const SessionCookie = "marineiq_session"

// Sessions attaches the dashboard session to the request, creating one on
// first visit or when the cookie names an evicted session.
func Sessions(store *dashboard.Store, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}

			sess, created := store.GetOrCreate(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the session from context, nil when absent.
func SessionFromContext(ctx context.Context) *dashboard.Session {
	if sess, ok := ctx.Value(SessionKey).(*dashboard.Session); ok {
		return sess
	}
	return nil
}
