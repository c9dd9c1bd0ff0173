package storyrepo

import (
	"context"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Repository provides access to persisted community stories.
//
// ListApproved returns approved stories ordered by CreatedAt descending.
type Repository interface {
	Create(ctx context.Context, s domain.Story) error

	GetByID(ctx context.Context, id domain.StoryID) (domain.Story, error)

	ListApproved(ctx context.Context) ([]domain.Story, error)

	// IncrementLikes adds one like to a story. The increment happens in the
	// store so two concurrent likes both count.
	IncrementLikes(ctx context.Context, id domain.StoryID) error
}
