package session

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/authprovider"
	clockport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/clock"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/profilerepo"
)

// Manager is the single authority over session state. Everything that can
// change who the caller is goes through it; other components only read the
// Session values it hands out.
type Manager struct {
	provider authprovider.Provider
	profiles profilerepo.Repository
	clk      clockport.Clock
	log      *zap.Logger
}

func NewManager(provider authprovider.Provider, profiles profilerepo.Repository, clk clockport.Clock, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		provider: provider,
		profiles: profiles,
		clk:      clk,
		log:      log,
	}
}

// Resolve turns an access token into a Session. An empty token resolves to
// the anonymous session; a provider failure also resolves to anonymous
// (surfacing it would block every page behind an outage). A profile fetch
// failure leaves Profile nil — "not yet available", not an error.
//
// The loading flag is cleared exactly once, on every exit path.
func (m *Manager) Resolve(ctx context.Context, accessToken string) (sess Session) {
	sess = Session{Loading: true}
	defer func() { sess.Loading = false }()

	token := strings.TrimSpace(accessToken)
	if token == "" {
		return sess
	}

	ident, err := m.provider.GetIdentity(ctx, token)
	if err != nil {
		m.log.Warn("session resolution failed", zap.Error(err))
		return sess
	}
	sess.Identity = ident.Subject

	p, err := m.profiles.GetBySubject(ctx, ident.Subject)
	if err != nil {
		m.log.Warn("profile fetch failed",
			zap.String("subject", string(ident.Subject)),
			zap.Error(err))
		return sess
	}
	sess.Profile = &p
	return sess
}

// SignUp delegates credential creation to the provider. The profile row is
// created by a provider-side trigger keyed on the new identity; session state
// does not change here (most deployments require email confirmation first).
func (m *Manager) SignUp(ctx context.Context, in SignUpInput) (authprovider.SignUpResult, error) {
	email := strings.TrimSpace(in.Email)
	if err := validateEmail(email); err != nil {
		return authprovider.SignUpResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid email",
			Details: map[string]any{"email": err.Error()},
		}
	}
	if in.Password == "" {
		return authprovider.SignUpResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid password",
			Details: map[string]any{"password": "must be non-empty"},
		}
	}

	metadata := map[string]any{}
	if name := domain.NormalizeHumanName(in.FullName); name != "" {
		metadata["full_name"] = name
	}
	if in.Phone != nil {
		metadata["phone"] = *in.Phone
	}
	if in.Role != "" {
		metadata["role"] = string(in.Role)
	}
	if in.Location != nil {
		metadata["location"] = *in.Location
	}

	res, err := m.provider.SignUp(ctx, email, in.Password, metadata)
	if err != nil {
		return authprovider.SignUpResult{}, mapProviderError(err)
	}
	return res, nil
}

// SignIn delegates to the provider and, on success, resolves the fresh
// session so the Profile is populated. On failure nothing changes.
func (m *Manager) SignIn(ctx context.Context, in SignInInput) (Session, authprovider.SignInResult, error) {
	res, err := m.provider.SignInWithPassword(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		return Session{}, authprovider.SignInResult{}, mapProviderError(err)
	}
	return m.Resolve(ctx, res.AccessToken), res, nil
}

// SignOut revokes the session at the provider. On success the caller gets the
// anonymous session back; on failure the existing session is left untouched
// and the failure is surfaced.
func (m *Manager) SignOut(ctx context.Context, accessToken string) (Session, error) {
	if err := m.provider.SignOut(ctx, accessToken); err != nil {
		return Session{}, mapProviderError(err)
	}
	return Session{}, nil
}

// GuestSession synthesizes a client-local guest session. No network call, no
// persistence; the placeholder profile is fixed (trust 0, no badges,
// unverified) and never written anywhere.
func (m *Manager) GuestSession() Session {
	p := domain.GuestProfile(m.clk.Now())
	return Session{
		Guest:   true,
		Profile: &p,
	}
}

// UpdateProfile applies a partial update for the session's identity. Guest
// and anonymous sessions are rejected before any I/O. Fields are merged into
// the returned Profile only after the backend confirms the write.
func (m *Manager) UpdateProfile(ctx context.Context, sess Session, in UpdateProfileInput) (domain.Profile, error) {
	if sess.Guest {
		return domain.Profile{}, &Error{
			Status:  403,
			Code:    "GUEST_SESSION",
			Message: "Guest sessions cannot update a profile.",
		}
	}
	if !sess.Authenticated() {
		return domain.Profile{}, &Error{
			Status:  401,
			Code:    "UNAUTHORIZED",
			Message: "No authenticated identity.",
		}
	}

	var patch profilerepo.Patch

	if in.FullName.IsSpecified() {
		if in.FullName.IsNull() {
			return domain.Profile{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid fullName",
				Details: map[string]any{"fullName": "cannot be null"},
			}
		}
		name := domain.NormalizeHumanName(in.FullName.Value())
		if name == "" {
			return domain.Profile{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid fullName",
				Details: map[string]any{"fullName": "must be non-empty"},
			}
		}
		patch.FullName = &name
	}

	if in.Phone.IsSpecified() {
		if in.Phone.IsNull() {
			empty := ""
			patch.Phone = &empty
		} else {
			v := strings.TrimSpace(in.Phone.Value())
			patch.Phone = &v
		}
	}

	if in.Location.IsSpecified() {
		if in.Location.IsNull() {
			empty := ""
			patch.Location = &empty
		} else {
			v := strings.TrimSpace(in.Location.Value())
			patch.Location = &v
		}
	}

	if in.Coordinates.IsSpecified() {
		if in.Coordinates.IsNull() {
			patch.ClearCoordinates = true
		} else {
			c := in.Coordinates.Value()
			patch.Coordinates = &c
		}
	}

	if in.ServicesOffered.IsSpecified() {
		if in.ServicesOffered.IsNull() {
			empty := []string{}
			patch.ServicesOffered = &empty
		} else {
			v := append([]string(nil), in.ServicesOffered.Value()...)
			patch.ServicesOffered = &v
		}
	}

	updated, err := m.profiles.Update(ctx, sess.Identity, patch)
	if err != nil {
		if errors.Is(err, profilerepo.ErrNotFound) {
			return domain.Profile{}, &Error{
				Status:  404,
				Code:    "PROFILE_NOT_PROVISIONED",
				Message: "No profile exists for the authenticated identity.",
			}
		}
		return domain.Profile{}, err
	}
	return updated, nil
}

func mapProviderError(err error) error {
	switch {
	case errors.Is(err, authprovider.ErrInvalidCredentials):
		return &Error{Status: 401, Code: "INVALID_CREDENTIALS", Message: "Email or password is incorrect."}
	case errors.Is(err, authprovider.ErrEmailTaken):
		return &Error{Status: 409, Code: "EMAIL_ALREADY_REGISTERED", Message: "An account already exists for this email."}
	case errors.Is(err, authprovider.ErrWeakPassword):
		return &Error{Status: 422, Code: "WEAK_PASSWORD", Message: "Password does not meet the provider's policy."}
	case errors.Is(err, authprovider.ErrInvalidToken):
		return &Error{Status: 401, Code: "INVALID_TOKEN", Message: "The session token is invalid or expired."}
	default:
		return &Error{Status: 502, Code: "AUTH_PROVIDER_UNAVAILABLE", Message: "The authentication service could not be reached."}
	}
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return err
	}
	// Ensure no "Name <email@x>" format sneaks in.
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}
