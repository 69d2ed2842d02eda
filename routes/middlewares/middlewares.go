package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/mbolis/case-report/httpx"
	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/session"
)

const SessionCookie = "report_session"

type ctxKey struct{}

// SessionFrom returns the session attached by the Session middleware.
func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(ctxKey{}).(*session.Session)
	return s
}

// Session attaches the caller's form session, starting a new one when the
// cookie is missing or has expired.
func Session(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var s *session.Session

			cookie, err := r.Cookie(SessionCookie)
			if err != nil && !errors.Is(err, http.ErrNoCookie) {
				httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "session.cookie")
				return
			}
			if err == nil {
				s, _ = store.Get(cookie.Value)
			}

			if s == nil {
				s, err = store.New()
				if err != nil {
					httpx.LogInternalError(w, r, "session.new", err)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Path:     "/",
					Name:     SessionCookie,
					Value:    s.ID,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Gate rejects every request to the wrapped routes while the panel is
// locked.
func Gate(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				httpx.LogStatus(w, r, http.StatusForbidden, log.DebugLevel, "panel.locked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
