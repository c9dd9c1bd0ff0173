// Package gotrue implements the auth provider port against a Supabase
// GoTrue endpoint.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/authprovider"
)

// Config configures the GoTrue endpoints and project credentials.
type Config struct {
	// BaseURL is the auth endpoint root, e.g. https://<project>.supabase.co/auth/v1.
	BaseURL string
	// AnonKey is the project's public API key, sent as the apikey header.
	AnonKey    string
	HTTPClient *http.Client
}

// Client talks to GoTrue over four calls: signup, password grant, logout and
// user lookup. Provider error bodies are mapped to the typed port errors; an
// unexpected status or transport failure maps to ErrUnavailable.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg}
}

func (c *Client) GetIdentity(ctx context.Context, accessToken string) (authprovider.Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return authprovider.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return authprovider.Identity{}, fmt.Errorf("%w: %v", authprovider.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return authprovider.Identity{}, fmt.Errorf("%w: decode user: %v", authprovider.ErrUnavailable, err)
		}
		if body.ID == "" {
			return authprovider.Identity{}, authprovider.ErrInvalidToken
		}
		return authprovider.Identity{
			Subject: domain.SubjectID(body.ID),
			Email:   body.Email,
		}, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		drain(resp.Body)
		return authprovider.Identity{}, authprovider.ErrInvalidToken
	default:
		drain(resp.Body)
		return authprovider.Identity{}, fmt.Errorf("%w: status %d", authprovider.ErrUnavailable, resp.StatusCode)
	}
}

func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (authprovider.SignUpResult, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		payload["data"] = metadata
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/signup", payload)
	if err != nil {
		return authprovider.SignUpResult{}, err
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return authprovider.SignUpResult{}, fmt.Errorf("%w: %v", authprovider.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return authprovider.SignUpResult{}, mapErrorBody(resp)
	}

	// GoTrue answers with either a session (auto-confirm on) or a bare user
	// (confirmation email pending). Both shapes carry the new user's id.
	var body struct {
		ID          string `json:"id"`
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return authprovider.SignUpResult{}, fmt.Errorf("%w: decode signup: %v", authprovider.ErrUnavailable, err)
	}
	subject := body.ID
	if subject == "" {
		subject = body.User.ID
	}
	return authprovider.SignUpResult{
		Subject:     domain.SubjectID(subject),
		AccessToken: body.AccessToken,
	}, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (authprovider.SignInResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/token?grant_type=password", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return authprovider.SignInResult{}, err
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return authprovider.SignInResult{}, fmt.Errorf("%w: %v", authprovider.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return authprovider.SignInResult{}, mapErrorBody(resp)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return authprovider.SignInResult{}, fmt.Errorf("%w: decode token: %v", authprovider.ErrUnavailable, err)
	}
	if body.AccessToken == "" {
		return authprovider.SignInResult{}, authprovider.ErrInvalidCredentials
	}
	return authprovider.SignInResult{
		Subject:     domain.SubjectID(body.User.ID),
		AccessToken: body.AccessToken,
		ExpiresIn:   body.ExpiresIn,
	}, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", authprovider.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	drain(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return authprovider.ErrInvalidToken
	default:
		return fmt.Errorf("%w: status %d", authprovider.ErrUnavailable, resp.StatusCode)
	}
}

// --- helpers ---

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authprovider.ErrUnavailable, err)
	}
	req.Header.Set("apikey", c.cfg.AnonKey)
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authprovider.ErrUnavailable, err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// mapErrorBody folds a GoTrue error response into the typed port errors.
func mapErrorBody(resp *http.Response) error {
	var body struct {
		Msg       string `json:"msg"`
		Message   string `json:"message"`
		ErrorCode string `json:"error_code"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := strings.ToLower(body.Msg + " " + body.Message + " " + body.ErrorCode)

	switch {
	case strings.Contains(msg, "already registered") || strings.Contains(msg, "user_already_exists"):
		return authprovider.ErrEmailTaken
	case strings.Contains(msg, "password") && (strings.Contains(msg, "weak") || strings.Contains(msg, "at least")):
		return authprovider.ErrWeakPassword
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return authprovider.ErrInvalidCredentials
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return authprovider.ErrWeakPassword
	default:
		return fmt.Errorf("%w: status %d", authprovider.ErrUnavailable, resp.StatusCode)
	}
}

func drain(r io.Reader) { _, _ = io.Copy(io.Discard, r) }
