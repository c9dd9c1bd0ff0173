package domain

import "time"

// SessionType distinguishes how a wellness session row was produced.
type SessionType string

const (
	SessionAIChat           SessionType = "ai_chat"
	SessionCommunitySupport SessionType = "community_support"
	SessionStorySharing     SessionType = "story_sharing"
)

// RiskLevel is the model-assessed risk attached to a wellness interaction.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ParseRiskLevel folds unknown labels to RiskLow; the model is asked for one
// of the four labels but its output is untrusted.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return RiskLevel(s)
	default:
		return RiskLow
	}
}

// WellnessSession is one logged mental-wellness interaction.
type WellnessSession struct {
	ID      WellnessSessionID
	Subject SubjectID

	Type    SessionType
	Content string

	Sentiment string
	RiskLevel RiskLevel
	Escalated bool

	CreatedAt time.Time
}
