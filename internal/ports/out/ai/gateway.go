package ai

import "context"

// Sentiment is the model's assessment of a piece of text.
type Sentiment struct {
	// Sentiment is one of positive/neutral/negative/crisis.
	Sentiment string
	// RiskLevel is one of low/medium/high/critical.
	RiskLevel string
	// NeedsEscalation flags text that should reach a human.
	NeedsEscalation bool
}

// NeutralSentiment is the safe default substituted when the provider fails or
// returns something unparseable.
func NeutralSentiment() Sentiment {
	return Sentiment{Sentiment: "neutral", RiskLevel: "low", NeedsEscalation: false}
}

// Gateway is the external text-completion provider. Every operation is a
// single attempt with no retry; failures are reported as a *Failure so
// callers can tell "the model said neutral" from "the call failed and we
// defaulted to neutral". Masking failures with safe fallbacks is the caller's
// job, not the gateway's.
type Gateway interface {
	// GenerateReply asks for a free-form companion reply to userText, with
	// contextText appended to the fixed system instruction.
	GenerateReply(ctx context.Context, userText, contextText string) (string, error)

	// Categorize asks for one label out of a closed category set. The raw
	// label is returned untrimmed; validation happens in the caller.
	Categorize(ctx context.Context, description string) (string, error)

	// AnalyzeSentiment asks for a JSON sentiment object and parses it.
	// A response that is not valid JSON is a *Failure.
	AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error)

	// Translate asks for text translated into targetLanguage.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}
