// Package views is the access gate: it decides, for a requested view, what
// the client actually renders. Resolution is a pure function of the request
// and the session so it can be property-tested directly.
package views

import (
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Resolve maps a requested view and a session to the rendered view.
//
// Precedence:
//  1. a loading session renders the loading placeholder, whatever was asked;
//  2. guests asking for a protected view are sent to the auth view — a guest
//     session exists but does not count as authentication;
//  3. anonymous callers asking for a protected view are sent to the auth view;
//  4. otherwise the requested view is rendered as-is (unknown names were
//     already folded to the default by domain.ParseView).
func Resolve(requested domain.View, s session.Session) domain.View {
	if s.Loading {
		return domain.ViewLoading
	}
	if requested.RequiresAuth() {
		if s.Guest || s.Anonymous() {
			return domain.ViewAuth
		}
	}
	return requested
}
