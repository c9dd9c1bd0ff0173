// Package groq implements the AI gateway against Groq's OpenAI-compatible
// chat-completions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/ai"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel   = "llama3-8b-8192"

	temperature = 0.7
	maxTokens   = 1024
)

const (
	companionPrompt = "You are Saathi, a compassionate AI mental health companion. You provide supportive, empathetic responses to people in need. Always be kind, understanding, and encouraging. If someone seems to be in crisis or mentions self-harm, gently suggest professional help. Keep responses concise but meaningful."

	categorizePrompt = "You are a disaster relief categorization assistant. Categorize the following help request into one of these categories: earthquake, flood, food, water, shelter, medical, financial, personal. Only return the category name in lowercase."

	sentimentPrompt = `You are a mental health sentiment analysis assistant. Analyze the emotional state of the following text and return a JSON object with "sentiment" (positive/neutral/negative/crisis), "riskLevel" (low/medium/high/critical), and "needsEscalation" (true/false). Only return valid JSON.`

	translatePrompt = "You are a helpful translation assistant. Translate the following text to %s. Only return the translated text, nothing else."
)

// Config configures the Groq endpoint and HTTP behavior.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client is a thin gateway over one chat-completions call: fixed model, fixed
// temperature and length caps, static bearer token, single attempt. It
// reports failures as typed *ai.Failure values and leaves masking to callers.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	return &Client{cfg: cfg}
}

func (c *Client) GenerateReply(ctx context.Context, userText, contextText string) (string, error) {
	system := companionPrompt
	if strings.TrimSpace(contextText) != "" {
		system += " " + contextText
	}
	return c.complete(ctx, system, userText)
}

func (c *Client) Categorize(ctx context.Context, description string) (string, error) {
	return c.complete(ctx, categorizePrompt, description)
}

func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (ai.Sentiment, error) {
	raw, err := c.complete(ctx, sentimentPrompt, text)
	if err != nil {
		return ai.Sentiment{}, err
	}

	var parsed struct {
		Sentiment       string `json:"sentiment"`
		RiskLevel       string `json:"riskLevel"`
		NeedsEscalation bool   `json:"needsEscalation"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &parsed); err != nil {
		return ai.Sentiment{}, &ai.Failure{Kind: ai.FailureMalformed, Err: err}
	}
	return ai.Sentiment{
		Sentiment:       parsed.Sentiment,
		RiskLevel:       parsed.RiskLevel,
		NeedsEscalation: parsed.NeedsEscalation,
	}, nil
}

func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return c.complete(ctx, fmt.Sprintf(translatePrompt, targetLanguage), text)
}

// --- wire types ---

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages    []message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Model:       c.cfg.Model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", &ai.Failure{Kind: ai.FailureMalformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", &ai.Failure{Kind: ai.FailureTransport, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", &ai.Failure{Kind: ai.FailureTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &ai.Failure{Kind: ai.FailureStatus, StatusCode: resp.StatusCode}
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ai.Failure{Kind: ai.FailureMalformed, Err: err}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &ai.Failure{Kind: ai.FailureEmptyReply}
	}
	return parsed.Choices[0].Message.Content, nil
}

// extractJSONObject trims any prose the model wraps around the JSON object it
// was asked for. It returns the raw input when no braces are found, letting
// json.Unmarshal produce the error.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
