package stories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	clockport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/clock"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/storyrepo"
)

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

type ShareInput struct {
	Title     string
	Content   string
	Category  string
	Anonymous bool
}

// Service owns the story wall: sharing, listing and liking community stories.
type Service struct {
	repo storyrepo.Repository
	clk  clockport.Clock

	newStoryID func() domain.StoryID
}

func NewService(repo storyrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newStoryID: func() domain.StoryID {
			return domain.StoryID(uuid.NewString())
		},
	}
}

// SetNewStoryIDForTest overrides story ID generation for deterministic tests.
func (s *Service) SetNewStoryIDForTest(fn func() domain.StoryID) {
	s.newStoryID = fn
}

// Share posts a story. Anonymous stories never record the author: the
// identity is dropped here, not masked at read time. Stories are currently
// auto-approved.
func (s *Service) Share(ctx context.Context, sess session.Session, in ShareInput) (domain.Story, error) {
	if err := requireRegistered(sess); err != nil {
		return domain.Story{}, err
	}
	if in.Title == "" || in.Content == "" {
		return domain.Story{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "title and content must be non-empty",
		}
	}
	category := in.Category
	if category == "" {
		category = "recovery"
	}

	var author *domain.SubjectID
	if !in.Anonymous {
		id := sess.Identity
		author = &id
	}

	story := domain.Story{
		ID:        s.newStoryID(),
		Author:    author,
		Title:     in.Title,
		Content:   in.Content,
		Category:  category,
		Anonymous: in.Anonymous,
		Approved:  true,
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.Create(ctx, story); err != nil {
		return domain.Story{}, err
	}
	return story, nil
}

// ListApproved returns the approved stories, newest first. Guests may read
// the wall; only writing is gated.
func (s *Service) ListApproved(ctx context.Context) ([]domain.Story, error) {
	return s.repo.ListApproved(ctx)
}

// Like adds one like to a story.
func (s *Service) Like(ctx context.Context, sess session.Session, id domain.StoryID) error {
	if err := requireRegistered(sess); err != nil {
		return err
	}
	if err := s.repo.IncrementLikes(ctx, id); err != nil {
		if errors.Is(err, storyrepo.ErrNotFound) {
			return &Error{
				Status:  404,
				Code:    "STORY_NOT_FOUND",
				Message: "No story exists with this id.",
			}
		}
		return err
	}
	return nil
}

func requireRegistered(sess session.Session) error {
	if sess.Guest {
		return &Error{
			Status:  403,
			Code:    "GUEST_SESSION",
			Message: "Create an account to share and like stories.",
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
