package aidrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
)

// Repo is an in-memory implementation of aidrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.HelpRequestID]domain.HelpRequest
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.HelpRequestID]domain.HelpRequest),
	}
}

func (r *Repo) Create(ctx context.Context, req domain.HelpRequest) error {
	_ = ctx
	if req.ID == "" {
		return aidrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[req.ID]; ok {
		return aidrepo.ErrAlreadyExists
	}
	r.byID[req.ID] = cloneRequest(req)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.HelpRequestID) (domain.HelpRequest, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.byID[id]
	if !ok {
		return domain.HelpRequest{}, aidrepo.ErrNotFound
	}
	return cloneRequest(req), nil
}

func (r *Repo) List(ctx context.Context, f aidrepo.Filter) ([]domain.HelpRequest, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HelpRequest, 0, len(r.byID))
	for _, req := range r.byID {
		if f.Category != "" && req.Category != f.Category {
			continue
		}
		if f.Priority != "" && req.Priority != f.Priority {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *Repo) ListByRequester(ctx context.Context, subject domain.SubjectID) ([]domain.HelpRequest, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HelpRequest, 0)
	for _, req := range r.byID {
		if req.Requester != subject {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id domain.HelpRequestID, status domain.RequestStatus, updatedAt time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return aidrepo.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt.UTC()
	r.byID[id] = req
	return nil
}

func cloneRequest(req domain.HelpRequest) domain.HelpRequest {
	out := req
	if req.Coordinates != nil {
		c := *req.Coordinates
		out.Coordinates = &c
	}
	return out
}

func sortNewestFirst(reqs []domain.HelpRequest) {
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].ID < reqs[j].ID
		}
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}
