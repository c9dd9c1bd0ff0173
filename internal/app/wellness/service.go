package wellness

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/ai"
	clockport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/clock"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

// FallbackReply is returned whenever the AI gateway fails. Enrichment calls
// are always masked: the companion stays responsive instead of surfacing a
// raw provider error to someone who may be in distress.
const FallbackReply = "Sorry, I am currently experiencing technical difficulties. Please try again later."

// GuestReply is the fixed demo answer guests receive. No gateway call and no
// session row is produced for a guest.
const GuestReply = "Thank you for sharing. As a guest, you're experiencing a demo of our AI companion. To access full features including personalized responses, sentiment analysis, and progress tracking, please create an account. I'm here to provide comprehensive mental health support when you're ready to join our community."

// SupportSuggestion is appended when a high-risk message also mentions
// material need, bridging the wellness chat to the relief network.
const SupportSuggestion = "I notice you might be facing some practical challenges as well. Would you like me to connect you with our Sahara disaster relief network? They can help with food, shelter, and other material needs."

// materialNeedWords routes high-risk messages toward material support.
var materialNeedWords = []string{"food", "shelter", "money", "help", "homeless", "hungry", "broke"}

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Turn is one prior exchange the client sends back for conversational
// context. Sender is "user" or "ai".
type Turn struct {
	Sender  string
	Content string
}

// ChatResult is what the companion answers with.
type ChatResult struct {
	Reply      string
	Sentiment  ai.Sentiment
	Suggestion string
}

// Service owns the mental-wellness surface: the AI companion chat, the
// standalone sentiment view and the session history.
type Service struct {
	repo    wellnessrepo.Repository
	gateway ai.Gateway
	clk     clockport.Clock
	log     *zap.Logger

	newSessionID func() domain.WellnessSessionID

	// ContextTurns bounds how many prior turns feed the reply prompt.
	ContextTurns int
}

func NewService(repo wellnessrepo.Repository, gateway ai.Gateway, clk clockport.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		gateway: gateway,
		clk:     clk,
		log:     log,
		newSessionID: func() domain.WellnessSessionID {
			return domain.WellnessSessionID(uuid.NewString())
		},
		ContextTurns: 3,
	}
}

// SetNewSessionIDForTest overrides session ID generation for deterministic tests.
func (s *Service) SetNewSessionIDForTest(fn func() domain.WellnessSessionID) {
	s.newSessionID = fn
}

// Chat runs one companion exchange: sentiment first, then the reply with the
// sentiment and recent turns folded into the prompt, then the session row.
// Both gateway calls are masked — a failed sentiment becomes neutral/low and
// a failed reply becomes FallbackReply. The row insert failure is logged, not
// surfaced; the reply already exists and the caller gets it either way.
func (s *Service) Chat(ctx context.Context, sess session.Session, message string, history []Turn) (ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResult{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "message must be non-empty",
		}
	}

	if sess.Guest {
		return ChatResult{
			Reply:     GuestReply,
			Sentiment: ai.NeutralSentiment(),
		}, nil
	}
	if !sess.Authenticated() {
		return ChatResult{}, &Error{
			Status:  401,
			Code:    "UNAUTHORIZED",
			Message: "No authenticated identity.",
		}
	}

	sentiment := s.analyze(ctx, message)

	reply, err := s.gateway.GenerateReply(ctx, message, s.replyContext(sentiment, history))
	if err != nil {
		s.log.Warn("reply generation failed", zap.Error(err))
		reply = FallbackReply
	}

	row := domain.WellnessSession{
		ID:        s.newSessionID(),
		Subject:   sess.Identity,
		Type:      domain.SessionAIChat,
		Content:   message,
		Sentiment: sentiment.Sentiment,
		RiskLevel: domain.ParseRiskLevel(sentiment.RiskLevel),
		Escalated: sentiment.NeedsEscalation,
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log.Warn("wellness session insert failed",
			zap.String("subject", string(sess.Identity)),
			zap.Error(err))
	}

	result := ChatResult{Reply: reply, Sentiment: sentiment}
	if row.RiskLevel == domain.RiskHigh || row.RiskLevel == domain.RiskCritical {
		if mentionsMaterialNeed(message) {
			result.Suggestion = SupportSuggestion
		}
	}
	return result, nil
}

// AnalyzeText scores a standalone piece of text and logs it as a
// community-support session. The gateway failure masks to neutral/low.
func (s *Service) AnalyzeText(ctx context.Context, sess session.Session, text string) (ai.Sentiment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ai.Sentiment{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "text must be non-empty",
		}
	}
	if err := requireRegistered(sess); err != nil {
		return ai.Sentiment{}, err
	}

	sentiment := s.analyze(ctx, text)

	row := domain.WellnessSession{
		ID:        s.newSessionID(),
		Subject:   sess.Identity,
		Type:      domain.SessionCommunitySupport,
		Content:   text,
		Sentiment: sentiment.Sentiment,
		RiskLevel: domain.ParseRiskLevel(sentiment.RiskLevel),
		Escalated: sentiment.NeedsEscalation,
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log.Warn("sentiment session insert failed",
			zap.String("subject", string(sess.Identity)),
			zap.Error(err))
	}
	return sentiment, nil
}

// History returns the caller's wellness sessions, newest first.
func (s *Service) History(ctx context.Context, sess session.Session) ([]domain.WellnessSession, error) {
	if err := requireRegistered(sess); err != nil {
		return nil, err
	}
	return s.repo.ListBySubject(ctx, sess.Identity)
}

// Translate passes text through the gateway. A failed call masks to
// FallbackReply — callers must tolerate receiving the apology string instead
// of a translation.
func (s *Service) Translate(ctx context.Context, text, targetLanguage string) string {
	if strings.TrimSpace(targetLanguage) == "" {
		targetLanguage = "english"
	}
	out, err := s.gateway.Translate(ctx, text, targetLanguage)
	if err != nil {
		s.log.Warn("translation failed",
			zap.String("target", targetLanguage),
			zap.Error(err))
		return FallbackReply
	}
	return out
}

func (s *Service) analyze(ctx context.Context, text string) ai.Sentiment {
	sentiment, err := s.gateway.AnalyzeSentiment(ctx, text)
	if err != nil {
		s.log.Warn("sentiment analysis failed", zap.Error(err))
		return ai.NeutralSentiment()
	}
	return sentiment
}

func (s *Service) replyContext(sentiment ai.Sentiment, history []Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User sentiment: %s, Risk level: %s.", sentiment.Sentiment, sentiment.RiskLevel)
	if sentiment.NeedsEscalation {
		b.WriteString(" IMPORTANT: This user may be in crisis and needs immediate professional help.")
	}
	if n := len(history); n > 0 {
		start := 0
		if s.ContextTurns > 0 && n > s.ContextTurns {
			start = n - s.ContextTurns
		}
		b.WriteString(" Previous conversation context: ")
		for i, turn := range history[start:] {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s: %s", turn.Sender, turn.Content)
		}
	}
	return b.String()
}

func mentionsMaterialNeed(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range materialNeedWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func requireRegistered(sess session.Session) error {
	if sess.Guest {
		return &Error{
			Status:  403,
			Code:    "GUEST_SESSION",
			Message: "Create an account to use wellness features.",
		}
	}
	if !sess.Authenticated() {
		return &Error{
			Status:  401,
			Code:    "UNAUTHORIZED",
			Message: "No authenticated identity.",
		}
	}
	return nil
}
