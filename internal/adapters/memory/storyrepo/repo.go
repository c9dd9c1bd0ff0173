package storyrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/storyrepo"
)

// Repo is an in-memory implementation of storyrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.StoryID]domain.Story
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.StoryID]domain.Story),
	}
}

func (r *Repo) Create(ctx context.Context, s domain.Story) error {
	_ = ctx
	if s.ID == "" {
		return storyrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; ok {
		return storyrepo.ErrAlreadyExists
	}
	r.byID[s.ID] = cloneStory(s)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.StoryID) (domain.Story, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return domain.Story{}, storyrepo.ErrNotFound
	}
	return cloneStory(s), nil
}

func (r *Repo) ListApproved(ctx context.Context) ([]domain.Story, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Story, 0, len(r.byID))
	for _, s := range r.byID {
		if !s.Approved {
			continue
		}
		out = append(out, cloneStory(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repo) IncrementLikes(ctx context.Context, id domain.StoryID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return storyrepo.ErrNotFound
	}
	s.Likes++
	r.byID[id] = s
	return nil
}

func cloneStory(s domain.Story) domain.Story {
	out := s
	if s.Author != nil {
		a := *s.Author
		out.Author = &a
	}
	return out
}
