package wellnessrepo

import (
	"context"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Repository provides access to persisted wellness sessions.
//
// ListBySubject returns the caller's sessions ordered by CreatedAt descending.
type Repository interface {
	Create(ctx context.Context, s domain.WellnessSession) error

	ListBySubject(ctx context.Context, subject domain.SubjectID) ([]domain.WellnessSession, error)
}
