package wellnessrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

// Repo is an in-memory implementation of wellnessrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.WellnessSessionID]domain.WellnessSession
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.WellnessSessionID]domain.WellnessSession),
	}
}

func (r *Repo) Create(ctx context.Context, s domain.WellnessSession) error {
	_ = ctx
	if s.ID == "" {
		return wellnessrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; ok {
		return wellnessrepo.ErrAlreadyExists
	}
	r.byID[s.ID] = s
	return nil
}

func (r *Repo) ListBySubject(ctx context.Context, subject domain.SubjectID) ([]domain.WellnessSession, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.WellnessSession, 0)
	for _, s := range r.byID {
		if s.Subject != subject {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
