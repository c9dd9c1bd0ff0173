package stories_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	memclock "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/clock"
	memstoryrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/storyrepo"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/stories"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

func newService(t *testing.T) (*stories.Service, *memclock.ManualClock) {
	t.Helper()
	clk := memclock.NewManualClock(time.Unix(9000, 0).UTC())
	svc := stories.NewService(memstoryrepo.NewRepo(), clk)
	n := 0
	svc.SetNewStoryIDForTest(func() domain.StoryID {
		n++
		return domain.StoryID(fmt.Sprintf("story-%03d", n))
	})
	return svc, clk
}

func authedSession(sub string) session.Session {
	return session.Session{Identity: domain.SubjectID(sub)}
}

func TestShare_AttributedStoryRecordsAuthor(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	story, err := svc.Share(context.Background(), authedSession("u1"), stories.ShareInput{
		Title:   "We rebuilt the school",
		Content: "It took four months but the kids are back.",
	})
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if story.Author == nil || *story.Author != "u1" {
		t.Fatalf("author = %v, want u1", story.Author)
	}
	if story.Category != "recovery" {
		t.Fatalf("category = %q, want default recovery", story.Category)
	}
	if !story.Approved {
		t.Fatal("stories should be auto-approved")
	}
}

func TestShare_AnonymousDropsAuthorAtWrite(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	story, err := svc.Share(ctx, authedSession("u1"), stories.ShareInput{
		Title:     "A hard year",
		Content:   "I lost my shop in the flood and started over.",
		Category:  "resilience",
		Anonymous: true,
	})
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if story.Author != nil {
		t.Fatalf("anonymous story stored author %v", *story.Author)
	}
	if !story.Anonymous {
		t.Fatal("Anonymous flag lost")
	}

	// The stored row has no author either.
	listed, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(listed) != 1 || listed[0].Author != nil {
		t.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestShare_GuestAndAnonymousSessionRejected(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	in := stories.ShareInput{Title: "t", Content: "c"}

	_, err := svc.Share(context.Background(), session.Session{Guest: true}, in)
	se := (*stories.Error)(nil)
	if !errors.As(err, &se) || se.Status != 403 || se.Code != "GUEST_SESSION" {
		t.Fatalf("guest: expected 403 GUEST_SESSION, got %v", err)
	}
	_, err = svc.Share(context.Background(), session.Session{}, in)
	if !errors.As(err, &se) || se.Status != 401 {
		t.Fatalf("anonymous: expected 401, got %v", err)
	}
}

func TestShare_EmptyTitleOrContentRejected(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	se := (*stories.Error)(nil)

	_, err := svc.Share(context.Background(), authedSession("u1"), stories.ShareInput{Content: "c"})
	if !errors.As(err, &se) || se.Status != 422 {
		t.Fatalf("empty title: expected 422, got %v", err)
	}
	_, err = svc.Share(context.Background(), authedSession("u1"), stories.ShareInput{Title: "t"})
	if !errors.As(err, &se) || se.Status != 422 {
		t.Fatalf("empty content: expected 422, got %v", err)
	}
}

func TestListApproved_OpenToGuests(t *testing.T) {
	t.Parallel()
	svc, clk := newService(t)
	ctx := context.Background()

	if _, err := svc.Share(ctx, authedSession("u1"), stories.ShareInput{Title: "first", Content: "c"}); err != nil {
		t.Fatalf("Share: %v", err)
	}
	clk.Advance(time.Minute)
	if _, err := svc.Share(ctx, authedSession("u1"), stories.ShareInput{Title: "second", Content: "c"}); err != nil {
		t.Fatalf("Share: %v", err)
	}

	// ListApproved takes no session at all: reads are ungated.
	listed, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(listed) != 2 || listed[0].Title != "second" {
		t.Fatalf("expected newest first, got %+v", listed)
	}
}

func TestLike_CountsAndUnknownStory(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	story, err := svc.Share(ctx, authedSession("u1"), stories.ShareInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if err := svc.Like(ctx, authedSession("u2"), story.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if err := svc.Like(ctx, authedSession("u3"), story.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	listed, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if listed[0].Likes != 2 {
		t.Fatalf("likes = %d, want 2", listed[0].Likes)
	}

	err = svc.Like(ctx, authedSession("u2"), "no-such-story")
	se := (*stories.Error)(nil)
	if !errors.As(err, &se) || se.Status != 404 || se.Code != "STORY_NOT_FOUND" {
		t.Fatalf("expected 404 STORY_NOT_FOUND, got %v", err)
	}

	se = nil
	if err := svc.Like(ctx, session.Session{Guest: true}, story.ID); !errors.As(err, &se) || se.Status != 403 {
		t.Fatalf("guest like: expected 403, got %v", err)
	}
}
