package profilerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/profilerepo"
)

// Repo is an in-memory implementation of profilerepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu        sync.RWMutex
	bySubject map[domain.SubjectID]domain.Profile
}

func NewRepo() *Repo {
	return &Repo{
		bySubject: make(map[domain.SubjectID]domain.Profile),
	}
}

// Seed inserts a profile row, standing in for the provider-side trigger that
// creates rows on sign-up.
func (r *Repo) Seed(p domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySubject[p.UserID] = cloneProfile(p)
}

func (r *Repo) GetBySubject(ctx context.Context, subject domain.SubjectID) (domain.Profile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.bySubject[subject]
	if !ok {
		return domain.Profile{}, profilerepo.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *Repo) Update(ctx context.Context, subject domain.SubjectID, patch profilerepo.Patch) (domain.Profile, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.bySubject[subject]
	if !ok {
		return domain.Profile{}, profilerepo.ErrNotFound
	}

	if patch.FullName != nil {
		v := *patch.FullName
		p.FullName = &v
	}
	if patch.Phone != nil {
		if *patch.Phone == "" {
			p.Phone = nil
		} else {
			v := *patch.Phone
			p.Phone = &v
		}
	}
	if patch.Location != nil {
		if *patch.Location == "" {
			p.Location = nil
		} else {
			v := *patch.Location
			p.Location = &v
		}
	}
	if patch.Coordinates != nil {
		c := *patch.Coordinates
		p.Coordinates = &c
	} else if patch.ClearCoordinates {
		p.Coordinates = nil
	}
	if patch.ServicesOffered != nil {
		p.ServicesOffered = append([]string(nil), (*patch.ServicesOffered)...)
	}

	r.bySubject[subject] = cloneProfile(p)
	return cloneProfile(p), nil
}

func (r *Repo) ListVolunteers(ctx context.Context) ([]domain.Profile, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Profile, 0)
	for _, p := range r.bySubject {
		if p.Role != domain.RoleVolunteer && p.Role != domain.RoleNGO {
			continue
		}
		if !p.Verified || p.Coordinates == nil {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func cloneProfile(p domain.Profile) domain.Profile {
	out := p
	out.FullName = cloneStringPtr(p.FullName)
	out.Phone = cloneStringPtr(p.Phone)
	out.Location = cloneStringPtr(p.Location)
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	if p.ServicesOffered != nil {
		out.ServicesOffered = append([]string(nil), p.ServicesOffered...)
	}
	if p.Badges != nil {
		out.Badges = append([]string(nil), p.Badges...)
	}
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
