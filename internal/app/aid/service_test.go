package aid_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	memaidrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/aidrepo"
	memclock "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/clock"
	memprofilerepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/profilerepo"
	memwellnessrepo "github.com/Harsh-Shrivastava1/sahara/internal/adapters/memory/wellnessrepo"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/aid"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/ai"
)

// fakeGateway scripts the AI responses per operation. A nil error with an
// empty script means the zero value is returned.
type fakeGateway struct {
	categorizeLabel string
	categorizeErr   error
	sentiment       ai.Sentiment
	sentimentErr    error
	replyText       string
	replyErr        error
	translated      string
	translateErr    error
}

func (g *fakeGateway) GenerateReply(context.Context, string, string) (string, error) {
	return g.replyText, g.replyErr
}
func (g *fakeGateway) Categorize(context.Context, string) (string, error) {
	return g.categorizeLabel, g.categorizeErr
}
func (g *fakeGateway) AnalyzeSentiment(context.Context, string) (ai.Sentiment, error) {
	return g.sentiment, g.sentimentErr
}
func (g *fakeGateway) Translate(context.Context, string, string) (string, error) {
	return g.translated, g.translateErr
}

// fixedLocator returns a scripted coordinate pair, or a miss.
type fixedLocator struct {
	coords *domain.Coordinates
}

func (l fixedLocator) Locate(context.Context, string) (*domain.Coordinates, error) {
	if l.coords == nil {
		return nil, nil
	}
	c := *l.coords
	return &c, nil
}

type fixture struct {
	svc      *aid.Service
	requests *memaidrepo.Repo
	wellness *memwellnessrepo.Repo
	profiles *memprofilerepo.Repo
	clk      *memclock.ManualClock
}

func newFixture(t *testing.T, gateway *fakeGateway, locator fixedLocator) *fixture {
	t.Helper()
	f := &fixture{
		requests: memaidrepo.NewRepo(),
		wellness: memwellnessrepo.NewRepo(),
		profiles: memprofilerepo.NewRepo(),
		clk:      memclock.NewManualClock(time.Unix(5000, 0).UTC()),
	}
	f.svc = aid.NewService(f.requests, f.wellness, f.profiles, gateway, locator, f.clk, nil)
	n := 0
	f.svc.SetNewRequestIDForTest(func() domain.HelpRequestID {
		n++
		return domain.HelpRequestID(fmt.Sprintf("req-%03d", n))
	})
	f.svc.SetNewSessionIDForTest(func() domain.WellnessSessionID { return "ws-1" })
	return f
}

func userSession(sub string, role domain.Role) session.Session {
	p := domain.Profile{UserID: domain.SubjectID(sub), Email: sub + "@example.com", Role: role}
	return session.Session{Identity: domain.SubjectID(sub), Profile: &p}
}

func TestCreate_CategorizesViaGatewayWhenCategoryOmitted(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: " Food \n"}, fixedLocator{})

	req, err := f.svc.Create(context.Background(), userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Rations needed",
		Description: "Family of five with no supplies",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Category != domain.CategoryFood {
		t.Fatalf("category = %s, want food", req.Category)
	}
	if req.Status != domain.StatusPending || req.Priority != domain.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", req)
	}
}

func TestCreate_GatewayFailureFallsBackToPersonal(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{categorizeErr: &ai.Failure{Kind: ai.FailureTransport, Err: errors.New("dial tcp: refused")}}
	f := newFixture(t, gw, fixedLocator{})

	req, err := f.svc.Create(context.Background(), userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Anything helps",
		Description: "Lost everything",
	})
	if err != nil {
		t.Fatalf("Create should mask the gateway failure, got %v", err)
	}
	if req.Category != domain.CategoryPersonal {
		t.Fatalf("category = %s, want personal fallback", req.Category)
	}
}

func TestCreate_UnrecognizedModelLabelFoldsToPersonal(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: "meteor strike"}, fixedLocator{})

	req, err := f.svc.Create(context.Background(), userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Odd event",
		Description: "Something unusual happened",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Category != domain.CategoryPersonal {
		t.Fatalf("category = %s, want personal", req.Category)
	}
}

func TestCreate_ExplicitCategorySkipsGateway(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{categorizeErr: errors.New("must not be called")}
	f := newFixture(t, gw, fixedLocator{})

	req, err := f.svc.Create(context.Background(), userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Water tank empty",
		Description: "No drinking water",
		Category:    "WATER",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Category != domain.CategoryWater {
		t.Fatalf("category = %s, want water", req.Category)
	}
}

func TestCreate_GeocodesLocation(t *testing.T) {
	t.Parallel()
	coords := domain.Coordinates{Latitude: 19.076, Longitude: 72.8777}
	f := newFixture(t, &fakeGateway{categorizeLabel: "shelter"}, fixedLocator{coords: &coords})

	req, err := f.svc.Create(context.Background(), userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Roof collapsed",
		Description: "Need temporary shelter",
		Location:    "Mumbai",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Coordinates == nil || req.Coordinates.Latitude != 19.076 {
		t.Fatalf("coordinates not attached: %+v", req.Coordinates)
	}

	// A geocoder miss files the request without coordinates.
	f2 := newFixture(t, &fakeGateway{categorizeLabel: "shelter"}, fixedLocator{})
	req, err = f2.svc.Create(context.Background(), userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Roof collapsed",
		Description: "Need temporary shelter",
		Location:    "Nowhere-in-particular",
	})
	if err != nil {
		t.Fatalf("Create without coords: %v", err)
	}
	if req.Coordinates != nil {
		t.Fatalf("expected no coordinates, got %+v", req.Coordinates)
	}
}

func TestCreate_DistressCategoryLogsSupportSuggestion(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: "medical"}, fixedLocator{})
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Medicine for my father",
		Description: "Insulin ran out",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := f.wellness.ListBySubject(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one support suggestion, got %d", len(rows))
	}
	if rows[0].Type != domain.SessionAIChat || rows[0].RiskLevel != domain.RiskLow {
		t.Fatalf("unexpected suggestion row: %+v", rows[0])
	}
}

func TestCreate_NonDistressCategoryLogsNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: "food"}, fixedLocator{})
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Rations",
		Description: "Out of food",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows, err := f.wellness.ListBySubject(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no wellness rows, got %d", len(rows))
	}
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{}, fixedLocator{})
	ctx := context.Background()
	sess := userSession("u1", domain.RoleUser)

	for _, tc := range []struct {
		name string
		in   aid.CreateInput
	}{
		{"missing title", aid.CreateInput{Description: "d"}},
		{"missing description", aid.CreateInput{Title: "t"}},
		{"bad priority", aid.CreateInput{Title: "t", Description: "d", Priority: "urgent"}},
	} {
		_, err := f.svc.Create(ctx, sess, tc.in)
		ae := (*aid.Error)(nil)
		if !errors.As(err, &ae) || ae.Status != 422 {
			t.Fatalf("%s: expected 422, got %v", tc.name, err)
		}
	}
}

func TestCreate_GuestAndAnonymousRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{}, fixedLocator{})
	ctx := context.Background()
	in := aid.CreateInput{Title: "t", Description: "d"}

	_, err := f.svc.Create(ctx, session.Session{Guest: true}, in)
	ae := (*aid.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 403 || ae.Code != "GUEST_SESSION" {
		t.Fatalf("guest: expected 403 GUEST_SESSION, got %v", err)
	}
	_, err = f.svc.Create(ctx, session.Session{}, in)
	if !errors.As(err, &ae) || ae.Status != 401 {
		t.Fatalf("anonymous: expected 401, got %v", err)
	}
}

func TestActivate_RoleGatingAndTransitions(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: "food"}, fixedLocator{})
	ctx := context.Background()

	req, err := f.svc.Create(ctx, userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Rations",
		Description: "Out of food",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Plain users cannot triage.
	_, err = f.svc.Activate(ctx, userSession("u1", domain.RoleUser), req.ID)
	ae := (*aid.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 403 {
		t.Fatalf("user activate: expected 403, got %v", err)
	}

	ngo := userSession("coordinator", domain.RoleNGO)
	f.clk.Advance(time.Hour)
	activated, err := f.svc.Activate(ctx, ngo, req.ID)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if activated.Status != domain.StatusActive {
		t.Fatalf("status = %s", activated.Status)
	}
	if !activated.UpdatedAt.After(req.UpdatedAt) {
		t.Fatalf("UpdatedAt not bumped: %v", activated.UpdatedAt)
	}

	// Activating twice conflicts.
	_, err = f.svc.Activate(ctx, ngo, req.ID)
	if !errors.As(err, &ae) || ae.Status != 409 || ae.Code != "INVALID_STATUS_TRANSITION" {
		t.Fatalf("second activate: expected 409, got %v", err)
	}

	// Unknown id is 404.
	_, err = f.svc.Activate(ctx, ngo, "missing")
	if !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("missing id: expected 404, got %v", err)
	}
}

func TestComplete_RequesterOrCoordinatorOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: "food"}, fixedLocator{})
	ctx := context.Background()

	req, err := f.svc.Create(ctx, userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Rations",
		Description: "Out of food",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.Complete(ctx, userSession("stranger", domain.RoleUser), req.ID)
	ae := (*aid.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 403 {
		t.Fatalf("stranger: expected 403, got %v", err)
	}

	done, err := f.svc.Complete(ctx, userSession("u1", domain.RoleUser), req.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Status != domain.StatusCompleted {
		t.Fatalf("status = %s", done.Status)
	}

	_, err = f.svc.Complete(ctx, userSession("u1", domain.RoleUser), req.ID)
	if !errors.As(err, &ae) || ae.Status != 409 {
		t.Fatalf("closed request: expected 409, got %v", err)
	}
}

func TestList_FilterValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{}, fixedLocator{})

	_, err := f.svc.List(context.Background(), aid.ListFilter{Priority: "urgent"})
	ae := (*aid.Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestMapData_OpenRequestsAndVerifiedVolunteers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeGateway{categorizeLabel: "flood"}, fixedLocator{})
	ctx := context.Background()

	open, err := f.svc.Create(ctx, userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Street flooded",
		Description: "Water rising",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	closed, err := f.svc.Create(ctx, userSession("u1", domain.RoleUser), aid.CreateInput{
		Title:       "Old request",
		Description: "Already handled",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Complete(ctx, userSession("u1", domain.RoleUser), closed.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	name := "Ravi Helper"
	f.profiles.Seed(domain.Profile{
		UserID:      "vol-1",
		Email:       "ravi@example.com",
		FullName:    &name,
		Role:        domain.RoleVolunteer,
		Coordinates: &domain.Coordinates{Latitude: 1, Longitude: 2},
		Verified:    true,
	})

	overlay, err := f.svc.MapData(ctx, userSession("u1", domain.RoleUser), "")
	if err != nil {
		t.Fatalf("MapData: %v", err)
	}
	if len(overlay.Requests) != 1 || overlay.Requests[0].ID != open.ID {
		t.Fatalf("unexpected requests: %+v", overlay.Requests)
	}
	if len(overlay.Volunteers) != 1 || overlay.Volunteers[0].UserID != "vol-1" {
		t.Fatalf("unexpected volunteers: %+v", overlay.Volunteers)
	}
}
