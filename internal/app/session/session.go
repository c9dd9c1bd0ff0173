package session

import "github.com/Harsh-Shrivastava1/sahara/internal/domain"

// Session is the resolved answer to "who is calling". It is produced by the
// Manager and read-only everywhere else; views and services never mutate it
// directly, which is what keeps guest and authenticated modes mutually
// exclusive.
type Session struct {
	// Identity is the provider subject, empty when anonymous or guest.
	Identity domain.SubjectID

	// Profile is nil while anonymous, and may stay nil for an authenticated
	// caller whose profile fetch failed ("not yet available", not an error).
	Profile *domain.Profile

	// Guest marks a client-local pseudo-session. A guest session never has an
	// Identity and is never written to the backend.
	Guest bool

	// Loading is true only while resolution is in flight.
	Loading bool
}

// Anonymous reports whether nobody is signed in and guest mode is off.
func (s Session) Anonymous() bool { return !s.Guest && s.Identity == "" }

// Authenticated reports whether a genuine (non-guest) identity is present.
func (s Session) Authenticated() bool { return !s.Guest && s.Identity != "" }
