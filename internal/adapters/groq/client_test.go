package groq_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/groq"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/ai"
)

// completionServer answers every chat-completions call with content, and
// captures the last request body for assertions.
func completionServer(t *testing.T, content string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.authorization = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured.body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		writeCompletion(w, content)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

type capturedRequest struct {
	authorization string
	body          struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Model string `json:"model"`
	}
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
}

func newClient(baseURL string) *groq.Client {
	return groq.NewClient(groq.Config{BaseURL: baseURL, APIKey: "test-key", Model: "test-model"})
}

func TestGenerateReply_SendsPromptAndBearer(t *testing.T) {
	t.Parallel()
	srv, captured := completionServer(t, "I'm here for you.")
	c := newClient(srv.URL)

	reply, err := c.GenerateReply(context.Background(), "I feel anxious", "User sentiment: negative, Risk level: low.")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply != "I'm here for you." {
		t.Fatalf("reply = %q", reply)
	}
	if captured.authorization != "Bearer test-key" {
		t.Fatalf("authorization = %q", captured.authorization)
	}
	if captured.body.Model != "test-model" {
		t.Fatalf("model = %q", captured.body.Model)
	}
	if len(captured.body.Messages) != 2 || captured.body.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", captured.body.Messages)
	}
	if got := captured.body.Messages[1]; got.Role != "user" || got.Content != "I feel anxious" {
		t.Fatalf("user message = %+v", got)
	}
}

func TestAnalyzeSentiment_ParsesWrappedJSON(t *testing.T) {
	t.Parallel()
	srv, _ := completionServer(t,
		`Here is the analysis: {"sentiment":"crisis","riskLevel":"critical","needsEscalation":true} hope that helps`)
	c := newClient(srv.URL)

	s, err := c.AnalyzeSentiment(context.Background(), "I can't go on")
	if err != nil {
		t.Fatalf("AnalyzeSentiment: %v", err)
	}
	if s.Sentiment != "crisis" || s.RiskLevel != "critical" || !s.NeedsEscalation {
		t.Fatalf("sentiment = %+v", s)
	}
}

func TestAnalyzeSentiment_NonJSONIsMalformedFailure(t *testing.T) {
	t.Parallel()
	srv, _ := completionServer(t, "the user seems quite sad, no JSON for you")
	c := newClient(srv.URL)

	_, err := c.AnalyzeSentiment(context.Background(), "text")
	f := (*ai.Failure)(nil)
	if !errors.As(err, &f) || f.Kind != ai.FailureMalformed {
		t.Fatalf("expected malformed failure, got %v", err)
	}
}

func TestComplete_StatusAndBodyFailures(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		t.Cleanup(srv.Close)

		_, err := newClient(srv.URL).Categorize(context.Background(), "desc")
		f := (*ai.Failure)(nil)
		if !errors.As(err, &f) || f.Kind != ai.FailureStatus || f.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected status failure 429, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		t.Cleanup(srv.Close)

		_, err := newClient(srv.URL).Categorize(context.Background(), "desc")
		f := (*ai.Failure)(nil)
		if !errors.As(err, &f) || f.Kind != ai.FailureMalformed {
			t.Fatalf("expected malformed failure, got %v", err)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		t.Cleanup(srv.Close)

		_, err := newClient(srv.URL).Categorize(context.Background(), "desc")
		f := (*ai.Failure)(nil)
		if !errors.As(err, &f) || f.Kind != ai.FailureEmptyReply {
			t.Fatalf("expected empty-reply failure, got %v", err)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		_, err := newClient("http://127.0.0.1:1/v1/chat").Categorize(context.Background(), "desc")
		f := (*ai.Failure)(nil)
		if !errors.As(err, &f) || f.Kind != ai.FailureTransport {
			t.Fatalf("expected transport failure, got %v", err)
		}
	})
}

func TestTranslate_TargetLanguageInPrompt(t *testing.T) {
	t.Parallel()
	srv, captured := completionServer(t, "bonjour")
	c := newClient(srv.URL)

	out, err := c.Translate(context.Background(), "hello", "french")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "bonjour" {
		t.Fatalf("out = %q", out)
	}
	if len(captured.body.Messages) == 0 ||
		!strings.Contains(captured.body.Messages[0].Content, "french") {
		t.Fatalf("system prompt missing target language: %+v", captured.body.Messages)
	}
}
