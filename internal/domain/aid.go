package domain

import "time"

// Category is the closed label set help requests are filed under. It matches
// the label set the categorization prompt constrains the model to.
type Category string

const (
	CategoryEarthquake Category = "earthquake"
	CategoryFlood      Category = "flood"
	CategoryFood       Category = "food"
	CategoryWater      Category = "water"
	CategoryShelter    Category = "shelter"
	CategoryMedical    Category = "medical"
	CategoryFinancial  Category = "financial"
	CategoryPersonal   Category = "personal"
)

// ParseCategory validates a label against the closed set. The model is asked
// for one of these labels but nothing guarantees compliance, so unrecognized
// text folds to CategoryPersonal, the catch-all the prompt itself offers.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryEarthquake, CategoryFlood, CategoryFood, CategoryWater,
		CategoryShelter, CategoryMedical, CategoryFinancial, CategoryPersonal:
		return Category(s)
	default:
		return CategoryPersonal
	}
}

// Priority is the requester-declared urgency of a help request.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriority reports whether s is a member of the priority set.
func ValidPriority(s string) bool {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// RequestStatus is the lifecycle state of a help request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusActive     RequestStatus = "active"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// HelpRequest is the domain representation of a community aid request.
type HelpRequest struct {
	ID        HelpRequestID
	Requester SubjectID

	Title       string
	Description string
	Category    Category
	Priority    Priority
	Status      RequestStatus

	Location    string
	Coordinates *Coordinates
	ContactInfo string

	PeopleAffected int

	CreatedAt time.Time
	UpdatedAt time.Time
}
