package adapthttp

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Geovany-dotcom/Backend2/internal/app"
	"github.com/Geovany-dotcom/Backend2/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

const loginPagePath = "/CargaLogin.html"

// requireAuth resolves the session cookie into a request principal. Requests
// without a valid session are sent to the login page rather than rejected,
// since the protected surface is browsed directly.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			http.Redirect(w, r, loginPagePath, http.StatusFound)
			return
		}

		principal, err := s.auth.ValidateSession(r.Context(), cookie.Value)
		if errors.Is(err, app.ErrSessionNotFound) || errors.Is(err, app.ErrSessionExpired) {
			http.Redirect(w, r, loginPagePath, http.StatusFound)
			return
		}
		if err != nil {
			writeServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole is requireAuth plus a role check: a valid session with the
// wrong role gets a 403 instead of a redirect.
func (s *Server) requireRole(role domain.Role, next http.HandlerFunc) http.Handler {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if p := principalFromContext(r); p == nil || p.Role != role {
			writeError(w, http.StatusForbidden, app.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func principalFromContext(r *http.Request) *domain.Principal {
	p, _ := r.Context().Value(principalContextKey).(*domain.Principal)
	return p
}

// loggingMiddleware logs one line per request with the resulting status.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d", r.Method, r.URL.Path, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
