package gotrue_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/gotrue"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/authprovider"
)

func newClient(baseURL string) *gotrue.Client {
	return gotrue.NewClient(gotrue.Config{BaseURL: baseURL, AnonKey: "anon-key"})
}

func TestSignUp_AutoConfirmSession(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signup" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey header = %q", r.Header.Get("apikey"))
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if data, ok := payload["data"].(map[string]any); !ok || data["full_name"] != "Asha" {
			t.Errorf("metadata not forwarded: %v", payload["data"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"user":         map[string]any{"id": "user-1"},
		})
	}))
	t.Cleanup(srv.Close)

	res, err := newClient(srv.URL).SignUp(context.Background(), "asha@example.com", "s3cret-pw",
		map[string]any{"full_name": "Asha"})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if res.Subject != "user-1" || res.AccessToken != "tok-1" {
		t.Fatalf("result = %+v", res)
	}
}

func TestSignUp_ConfirmationPendingHasNoToken(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Bare user object, no session.
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "user-2", "email": "b@example.com"})
	}))
	t.Cleanup(srv.Close)

	res, err := newClient(srv.URL).SignUp(context.Background(), "b@example.com", "s3cret-pw", nil)
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if res.Subject != "user-2" || res.AccessToken != "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestSignUp_ErrorBodyMapping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
		body   map[string]any
		want   error
	}{
		{"email taken", 400, map[string]any{"msg": "User already registered"}, authprovider.ErrEmailTaken},
		{"error code taken", 422, map[string]any{"error_code": "user_already_exists"}, authprovider.ErrEmailTaken},
		{"weak password", 422, map[string]any{"msg": "Password should be at least 6 characters"}, authprovider.ErrWeakPassword},
		{"unprocessable", 422, map[string]any{"msg": "something else"}, authprovider.ErrWeakPassword},
		{"server down", 502, nil, authprovider.ErrUnavailable},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(tc.body)
			}))
			t.Cleanup(srv.Close)

			_, err := newClient(srv.URL).SignUp(context.Background(), "a@example.com", "pw", nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSignInWithPassword(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request: %s %s", r.URL.Path, r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-9",
			"expires_in":   3600,
			"user":         map[string]any{"id": "user-9"},
		})
	}))
	t.Cleanup(srv.Close)

	res, err := newClient(srv.URL).SignInWithPassword(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("SignInWithPassword: %v", err)
	}
	if res.Subject != "user-9" || res.AccessToken != "tok-9" || res.ExpiresIn != 3600 {
		t.Fatalf("result = %+v", res)
	}
}

func TestSignInWithPassword_BadCredentials(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"msg": "Invalid login credentials"})
	}))
	t.Cleanup(srv.Close)

	_, err := newClient(srv.URL).SignInWithPassword(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, authprovider.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetIdentity(t *testing.T) {
	t.Parallel()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				t.Errorf("authorization = %q", r.Header.Get("Authorization"))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "user-1", "email": "a@example.com"})
		}))
		t.Cleanup(srv.Close)

		id, err := newClient(srv.URL).GetIdentity(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("GetIdentity: %v", err)
		}
		if id.Subject != "user-1" || id.Email != "a@example.com" {
			t.Fatalf("identity = %+v", id)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(srv.Close)

		_, err := newClient(srv.URL).GetIdentity(context.Background(), "bad")
		if !errors.Is(err, authprovider.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("provider down", func(t *testing.T) {
		t.Parallel()
		_, err := newClient("http://127.0.0.1:1").GetIdentity(context.Background(), "tok")
		if !errors.Is(err, authprovider.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	t.Run("revoked", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/logout" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(srv.Close)

		if err := newClient(srv.URL).SignOut(context.Background(), "tok-1"); err != nil {
			t.Fatalf("SignOut: %v", err)
		}
	})

	t.Run("bad token", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(srv.Close)

		err := newClient(srv.URL).SignOut(context.Background(), "bad")
		if !errors.Is(err, authprovider.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}
