package aid

import "github.com/Harsh-Shrivastava1/sahara/internal/domain"

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

// CreateInput is a new help request as submitted by the client. Category may
// be empty, in which case the description is categorized by the AI gateway.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Location    string
	ContactInfo string

	PeopleAffected int
}

// MapOverlay is the relief-map payload: open help requests alongside the
// volunteer and NGO profiles that can respond to them.
type MapOverlay struct {
	Requests   []domain.HelpRequest
	Volunteers []domain.Profile
}

// ListFilter narrows List results; empty fields mean "no constraint".
type ListFilter struct {
	Category string
	Priority string
	Status   string
}
