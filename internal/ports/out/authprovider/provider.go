package authprovider

import (
	"context"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Identity is what the provider knows about the caller behind a token.
type Identity struct {
	Subject domain.SubjectID
	Email   string
}

// SignUpResult reports what the provider did with a credential creation.
// Many providers require email confirmation before a session exists, in which
// case AccessToken is empty and the caller's session is unchanged.
type SignUpResult struct {
	Subject     domain.SubjectID
	AccessToken string
}

// SignInResult carries the access token minted for a password grant.
type SignInResult struct {
	Subject     domain.SubjectID
	AccessToken string
	ExpiresIn   int
}

// Provider is the external auth service. The profile row behind a new
// identity is created by a provider-side trigger, never by this service.
type Provider interface {
	// GetIdentity resolves the identity behind an access token.
	GetIdentity(ctx context.Context, accessToken string) (Identity, error)

	// SignUp creates credentials. Metadata rides along for the provider-side
	// trigger that creates the profile row; this service never writes it.
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (SignUpResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (SignInResult, error)

	// SignOut revokes the token's session at the provider.
	SignOut(ctx context.Context, accessToken string) error
}
