package domain

// SubjectID is the authenticated subject issued by the auth provider (its "sub").
// We model it as an opaque identifier: its format is controlled by the provider.
type SubjectID string

// HelpRequestID is an internal identifier for a help-request record.
type HelpRequestID string

// StoryID is an internal identifier for a community story record.
type StoryID string

// WellnessSessionID is an internal identifier for a wellness session record.
type WellnessSessionID string
