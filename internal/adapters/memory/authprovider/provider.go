package authprovider

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/authprovider"
)

type account struct {
	subject  domain.SubjectID
	email    string
	password string
}

// Provider is an in-memory authprovider.Provider for local development and
// tests. Tokens are opaque UUIDs, sessions live until SignOut, and sign-ups
// are confirmed immediately (no email round-trip).
type Provider struct {
	mu       sync.Mutex
	byEmail  map[string]*account
	sessions map[string]domain.SubjectID

	// OnSignUp, when set, is invoked with the new subject and metadata —
	// the stand-in for the provider-side trigger that creates profile rows.
	OnSignUp func(subject domain.SubjectID, email string, metadata map[string]any)
}

func NewProvider() *Provider {
	return &Provider{
		byEmail:  make(map[string]*account),
		sessions: make(map[string]domain.SubjectID),
	}
}

func (p *Provider) GetIdentity(ctx context.Context, accessToken string) (authprovider.Identity, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	sub, ok := p.sessions[accessToken]
	if !ok {
		return authprovider.Identity{}, authprovider.ErrInvalidToken
	}
	for _, acct := range p.byEmail {
		if acct.subject == sub {
			return authprovider.Identity{Subject: sub, Email: acct.email}, nil
		}
	}
	return authprovider.Identity{Subject: sub}, nil
}

func (p *Provider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (authprovider.SignUpResult, error) {
	_ = ctx
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 6 {
		return authprovider.SignUpResult{}, authprovider.ErrWeakPassword
	}

	p.mu.Lock()
	if _, exists := p.byEmail[email]; exists {
		p.mu.Unlock()
		return authprovider.SignUpResult{}, authprovider.ErrEmailTaken
	}
	acct := &account{
		subject:  domain.SubjectID(uuid.NewString()),
		email:    email,
		password: password,
	}
	p.byEmail[email] = acct
	hook := p.OnSignUp
	p.mu.Unlock()

	if hook != nil {
		hook(acct.subject, email, metadata)
	}
	return authprovider.SignUpResult{Subject: acct.subject}, nil
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (authprovider.SignInResult, error) {
	_ = ctx
	email = strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	defer p.mu.Unlock()

	acct, ok := p.byEmail[email]
	if !ok || acct.password != password {
		return authprovider.SignInResult{}, authprovider.ErrInvalidCredentials
	}
	token := uuid.NewString()
	p.sessions[token] = acct.subject
	return authprovider.SignInResult{
		Subject:     acct.subject,
		AccessToken: token,
		ExpiresIn:   3600,
	}, nil
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.sessions[accessToken]; !ok {
		return authprovider.ErrInvalidToken
	}
	delete(p.sessions, accessToken)
	return nil
}
