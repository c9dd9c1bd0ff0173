package httpapi

import (
	"net/http"
	"strings"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
)

// GuestHeader marks a request as running in guest mode. It is only honored
// when no bearer token is present: a real token always wins.
const GuestHeader = "X-Guest-Session"

// NewSessionMiddleware resolves the caller's session once per request and
// stores it in context. It never rejects: an invalid or missing token resolves
// to the anonymous session and the services decide what that may do.
func NewSessionMiddleware(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			var sess session.Session
			if token := bearerToken(r); token != "" {
				sess = mgr.Resolve(r.Context(), token)
			} else if isGuestRequest(r) {
				sess = mgr.GuestSession()
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, prefix))
}

func isGuestRequest(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.Header.Get(GuestHeader))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
