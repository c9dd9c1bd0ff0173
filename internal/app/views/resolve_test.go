package views_test

import (
	"testing"
	"time"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/views"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

func timeZero() time.Time { return time.Unix(0, 0).UTC() }

func authedSession() session.Session {
	p := domain.Profile{UserID: "sub-1", Email: "a@example.com", Role: domain.RoleUser}
	return session.Session{Identity: "sub-1", Profile: &p}
}

func TestResolve_LoadingWinsOverEverything(t *testing.T) {
	t.Parallel()

	loading := session.Session{Loading: true}
	for _, v := range domain.AllViews() {
		if got := views.Resolve(v, loading); got != domain.ViewLoading {
			t.Fatalf("Resolve(%s, loading) = %s, want %s", v, got, domain.ViewLoading)
		}
	}

	// Loading beats guest and authenticated state too.
	g := session.Session{Guest: true, Loading: true}
	if got := views.Resolve(domain.ViewDashboard, g); got != domain.ViewLoading {
		t.Fatalf("guest+loading = %s", got)
	}
	a := authedSession()
	a.Loading = true
	if got := views.Resolve(domain.ViewDashboard, a); got != domain.ViewLoading {
		t.Fatalf("authed+loading = %s", got)
	}
}

func TestResolve_AnonymousProtectedViewsRedirectToAuth(t *testing.T) {
	t.Parallel()

	anon := session.Session{}
	for _, v := range domain.AllViews() {
		got := views.Resolve(v, anon)
		if v.RequiresAuth() {
			if got != domain.ViewAuth {
				t.Fatalf("Resolve(%s, anonymous) = %s, want %s", v, got, domain.ViewAuth)
			}
		} else if got != v {
			t.Fatalf("Resolve(%s, anonymous) = %s, want passthrough", v, got)
		}
	}
}

func TestResolve_GuestDoesNotCountAsAuthenticated(t *testing.T) {
	t.Parallel()

	p := domain.GuestProfile(timeZero())
	guest := session.Session{Guest: true, Profile: &p}
	for _, v := range domain.AllViews() {
		got := views.Resolve(v, guest)
		if v.RequiresAuth() {
			if got != domain.ViewAuth {
				t.Fatalf("Resolve(%s, guest) = %s, want %s", v, got, domain.ViewAuth)
			}
		} else if got != v {
			t.Fatalf("Resolve(%s, guest) = %s, want passthrough", v, got)
		}
	}
}

func TestResolve_AuthenticatedGetsEveryView(t *testing.T) {
	t.Parallel()

	authed := authedSession()
	for _, v := range domain.AllViews() {
		if got := views.Resolve(v, authed); got != v {
			t.Fatalf("Resolve(%s, authenticated) = %s, want passthrough", v, got)
		}
	}

	// A missing profile does not demote an authenticated identity.
	noProfile := session.Session{Identity: "sub-2"}
	if got := views.Resolve(domain.ViewDashboard, noProfile); got != domain.ViewDashboard {
		t.Fatalf("authed without profile = %s", got)
	}
}

func TestResolve_NeverReturnsLoadingForSettledSession(t *testing.T) {
	t.Parallel()

	for _, s := range []session.Session{{}, {Guest: true}, authedSession()} {
		for _, v := range domain.AllViews() {
			if got := views.Resolve(v, s); got == domain.ViewLoading {
				t.Fatalf("Resolve(%s, settled %+v) yielded the loading view", v, s)
			}
		}
	}
}

func TestParseView_UnknownNamesFoldToDefault(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "admin-panel", "Dashboard", "loading", "home "} {
		if got := domain.ParseView(name); got != domain.DefaultView {
			t.Fatalf("ParseView(%q) = %s, want %s", name, got, domain.DefaultView)
		}
	}
	for _, v := range domain.AllViews() {
		if got := domain.ParseView(string(v)); got != v {
			t.Fatalf("ParseView(%s) = %s", v, got)
		}
	}
}
