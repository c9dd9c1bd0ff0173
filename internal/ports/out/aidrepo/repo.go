package aidrepo

import (
	"context"
	"time"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Category domain.Category
	Priority domain.Priority
	Status   domain.RequestStatus
}

// Repository provides access to persisted help requests.
//
// Result ordering expectations:
// - List methods return results ordered by CreatedAt descending (newest first)
//   to keep behavior deterministic.
type Repository interface {
	Create(ctx context.Context, r domain.HelpRequest) error

	GetByID(ctx context.Context, id domain.HelpRequestID) (domain.HelpRequest, error)

	List(ctx context.Context, f Filter) ([]domain.HelpRequest, error)
	ListByRequester(ctx context.Context, subject domain.SubjectID) ([]domain.HelpRequest, error)

	// UpdateStatus transitions a request and bumps UpdatedAt. The timestamp is
	// passed explicitly so the repository never reaches for the clock itself.
	UpdateStatus(ctx context.Context, id domain.HelpRequestID, status domain.RequestStatus, updatedAt time.Time) error
}
