// Package contracttest holds behavior suites every repository implementation
// must pass. The memory and postgres adapters run the same suites, so the
// services cannot observe which backend they are wired to.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	aidrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
	profilerepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/profilerepo"
	storyrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/storyrepo"
	wellnessrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

type CleanupFunc = func()

// SeedProfileFunc inserts a profile row directly into the backing store. The
// repository port has no Create (rows are provisioned by the auth provider's
// trigger), so each backend supplies its own seeding path.
type SeedProfileFunc func(t *testing.T, p domain.Profile)

type ProfileRepoFactory func(t *testing.T) (profilerepoport.Repository, SeedProfileFunc, CleanupFunc)
type AidRepoFactory func(t *testing.T) (aidrepoport.Repository, CleanupFunc)
type StoryRepoFactory func(t *testing.T) (storyrepoport.Repository, CleanupFunc)
type WellnessRepoFactory func(t *testing.T) (wellnessrepoport.Repository, CleanupFunc)

func RunProfileRepo(t *testing.T, newRepo ProfileRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, seed, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	sub := domain.SubjectID(uuid.NewString())
	name := "Asha Verma"
	seed(t, domain.Profile{
		UserID:          sub,
		Email:           "asha@example.com",
		FullName:        &name,
		Role:            domain.RoleUser,
		ServicesOffered: []string{},
		Badges:          []string{},
		CreatedAt:       now,
	})

	got, err := repo.GetBySubject(ctx, sub)
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if got.Email != "asha@example.com" || got.FullName == nil || *got.FullName != "Asha Verma" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := repo.GetBySubject(ctx, domain.SubjectID(uuid.NewString())); !errors.Is(err, profilerepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Partial update: only named fields change.
	newName := "Asha V."
	phone := "+91-555-0101"
	updated, err := repo.Update(ctx, sub, profilerepoport.Patch{
		FullName: &newName,
		Phone:    &phone,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName == nil || *updated.FullName != "Asha V." {
		t.Fatalf("full name not applied: %+v", updated)
	}
	if updated.Phone == nil || *updated.Phone != "+91-555-0101" {
		t.Fatalf("phone not applied: %+v", updated)
	}
	if updated.Email != "asha@example.com" {
		t.Fatalf("untouched field changed: %+v", updated)
	}

	// Coordinates set then cleared.
	coords := domain.Coordinates{Latitude: 28.6139, Longitude: 77.209}
	updated, err = repo.Update(ctx, sub, profilerepoport.Patch{Coordinates: &coords})
	if err != nil {
		t.Fatalf("Update coordinates: %v", err)
	}
	if updated.Coordinates == nil || updated.Coordinates.Latitude != 28.6139 {
		t.Fatalf("coordinates not applied: %+v", updated)
	}
	updated, err = repo.Update(ctx, sub, profilerepoport.Patch{ClearCoordinates: true})
	if err != nil {
		t.Fatalf("Update clear coordinates: %v", err)
	}
	if updated.Coordinates != nil {
		t.Fatalf("coordinates not cleared: %+v", updated)
	}

	if _, err := repo.Update(ctx, domain.SubjectID(uuid.NewString()), profilerepoport.Patch{FullName: &newName}); !errors.Is(err, profilerepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on missing update, got %v", err)
	}

	// ListVolunteers: verified volunteer/ngo with coordinates only.
	volName := "Ravi Helper"
	volSub := domain.SubjectID(uuid.NewString())
	seed(t, domain.Profile{
		UserID:      volSub,
		Email:       "ravi@example.com",
		FullName:    &volName,
		Role:        domain.RoleVolunteer,
		Coordinates: &domain.Coordinates{Latitude: 19.076, Longitude: 72.8777},
		Verified:    true,
		CreatedAt:   now.Add(time.Minute),
	})
	unverifiedSub := domain.SubjectID(uuid.NewString())
	seed(t, domain.Profile{
		UserID:      unverifiedSub,
		Email:       "new@example.com",
		Role:        domain.RoleVolunteer,
		Coordinates: &domain.Coordinates{Latitude: 1, Longitude: 1},
		Verified:    false,
		CreatedAt:   now.Add(2 * time.Minute),
	})

	vols, err := repo.ListVolunteers(ctx)
	if err != nil {
		t.Fatalf("ListVolunteers: %v", err)
	}
	for _, v := range vols {
		if v.UserID == sub {
			t.Fatalf("plain user listed as volunteer")
		}
		if v.UserID == unverifiedSub {
			t.Fatalf("unverified volunteer listed")
		}
	}
	found := false
	for _, v := range vols {
		if v.UserID == volSub {
			found = true
		}
	}
	if !found {
		t.Fatalf("verified volunteer missing from %d results", len(vols))
	}
}

func RunAidRepo(t *testing.T, newRepo AidRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(2000, 0).UTC()
	requester := domain.SubjectID(uuid.NewString())
	other := domain.SubjectID(uuid.NewString())

	first := domain.HelpRequest{
		ID:          domain.HelpRequestID(uuid.NewString()),
		Requester:   requester,
		Title:       "Need drinking water",
		Description: "Supply cut off since the flood",
		Category:    domain.CategoryWater,
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusPending,
		Location:    "Patna",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	second := domain.HelpRequest{
		ID:          domain.HelpRequestID(uuid.NewString()),
		Requester:   other,
		Title:       "Shelter for family of four",
		Description: "House damaged in the earthquake",
		Category:    domain.CategoryShelter,
		Priority:    domain.PriorityCritical,
		Status:      domain.StatusPending,
		Location:    "Bhuj",
		CreatedAt:   now.Add(time.Minute),
		UpdatedAt:   now.Add(time.Minute),
	}
	for _, r := range []domain.HelpRequest{first, second} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != first.Title || got.Category != domain.CategoryWater {
		t.Fatalf("unexpected request: %+v", got)
	}
	if _, err := repo.GetByID(ctx, domain.HelpRequestID(uuid.NewString())); !errors.Is(err, aidrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Newest first.
	all, err := repo.List(ctx, aidrepoport.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("unexpected ordering: %+v", all)
	}

	// Category filter.
	water, err := repo.List(ctx, aidrepoport.Filter{Category: domain.CategoryWater})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(water) != 1 || water[0].ID != first.ID {
		t.Fatalf("unexpected filter result: %+v", water)
	}

	mine, err := repo.ListByRequester(ctx, requester)
	if err != nil {
		t.Fatalf("ListByRequester: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Fatalf("unexpected requester result: %+v", mine)
	}

	// Status transition bumps UpdatedAt.
	later := now.Add(time.Hour)
	if err := repo.UpdateStatus(ctx, first.ID, domain.StatusActive, later); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err = repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID after transition: %v", err)
	}
	if got.Status != domain.StatusActive || !got.UpdatedAt.Equal(later) {
		t.Fatalf("transition not applied: %+v", got)
	}
	if err := repo.UpdateStatus(ctx, domain.HelpRequestID(uuid.NewString()), domain.StatusActive, later); !errors.Is(err, aidrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on missing transition, got %v", err)
	}
}

func RunStoryRepo(t *testing.T, newRepo StoryRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(3000, 0).UTC()
	author := domain.SubjectID(uuid.NewString())

	named := domain.Story{
		ID:        domain.StoryID(uuid.NewString()),
		Author:    &author,
		Title:     "We rebuilt the school",
		Content:   "Three months after the flood the classrooms reopened.",
		Category:  "recovery",
		Approved:  true,
		CreatedAt: now,
	}
	anon := domain.Story{
		ID:        domain.StoryID(uuid.NewString()),
		Title:     "Still standing",
		Content:   "Lost the house, kept the family together.",
		Category:  "hope",
		Anonymous: true,
		Approved:  true,
		CreatedAt: now.Add(time.Minute),
	}
	pending := domain.Story{
		ID:        domain.StoryID(uuid.NewString()),
		Author:    &author,
		Title:     "Unreviewed",
		Content:   "Awaiting moderation.",
		Category:  "recovery",
		Approved:  false,
		CreatedAt: now.Add(2 * time.Minute),
	}
	for _, s := range []domain.Story{named, anon, pending} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	approved, err := repo.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(approved) != 2 || approved[0].ID != anon.ID || approved[1].ID != named.ID {
		t.Fatalf("unexpected approved list: %+v", approved)
	}
	if approved[0].Author != nil {
		t.Fatalf("anonymous story carries an author: %+v", approved[0])
	}

	if err := repo.IncrementLikes(ctx, named.ID); err != nil {
		t.Fatalf("IncrementLikes: %v", err)
	}
	if err := repo.IncrementLikes(ctx, named.ID); err != nil {
		t.Fatalf("IncrementLikes again: %v", err)
	}
	got, err := repo.GetByID(ctx, named.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Likes != 2 {
		t.Fatalf("expected 2 likes, got %d", got.Likes)
	}
	if err := repo.IncrementLikes(ctx, domain.StoryID(uuid.NewString())); !errors.Is(err, storyrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func RunWellnessRepo(t *testing.T, newRepo WellnessRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(4000, 0).UTC()
	subject := domain.SubjectID(uuid.NewString())
	other := domain.SubjectID(uuid.NewString())

	rows := []domain.WellnessSession{
		{
			ID:        domain.WellnessSessionID(uuid.NewString()),
			Subject:   subject,
			Type:      domain.SessionAIChat,
			Content:   "feeling overwhelmed",
			Sentiment: "negative",
			RiskLevel: domain.RiskMedium,
			CreatedAt: now,
		},
		{
			ID:        domain.WellnessSessionID(uuid.NewString()),
			Subject:   subject,
			Type:      domain.SessionCommunitySupport,
			Content:   "doing a bit better",
			Sentiment: "neutral",
			RiskLevel: domain.RiskLow,
			CreatedAt: now.Add(time.Minute),
		},
		{
			ID:        domain.WellnessSessionID(uuid.NewString()),
			Subject:   other,
			Type:      domain.SessionAIChat,
			Content:   "someone else's session",
			Sentiment: "neutral",
			RiskLevel: domain.RiskLow,
			CreatedAt: now.Add(2 * time.Minute),
		},
	}
	for _, row := range rows {
		if err := repo.Create(ctx, row); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListBySubject(ctx, subject)
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != rows[1].ID || got[1].ID != rows[0].ID {
		t.Fatalf("unexpected ordering: %+v", got)
	}
	for _, row := range got {
		if row.Subject != subject {
			t.Fatalf("foreign row leaked: %+v", row)
		}
	}
}
