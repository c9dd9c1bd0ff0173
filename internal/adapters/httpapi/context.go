package httpapi

import (
	"context"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
)

type sessionKey struct{}

func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session the middleware resolved for this
// request. A missing value decodes as the anonymous session.
func SessionFromContext(ctx context.Context) session.Session {
	if s, ok := ctx.Value(sessionKey{}).(session.Session); ok {
		return s
	}
	return session.Session{}
}
