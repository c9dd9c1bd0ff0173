package aid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/ai"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
	clockport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/clock"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/geolocator"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/profilerepo"
	"github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

// Service owns the community-aid surface: filing, listing and transitioning
// help requests. AI categorization and geolocation are auxiliary enrichment —
// their failures are logged and masked, never surfaced to the requester.
type Service struct {
	repo     aidrepo.Repository
	wellness wellnessrepo.Repository
	profiles profilerepo.Repository
	gateway  ai.Gateway
	locator  geolocator.Locator
	clk      clockport.Clock
	log      *zap.Logger

	newRequestID func() domain.HelpRequestID
	newSessionID func() domain.WellnessSessionID

	// GeoTimeout bounds the forward-geocode lookup on create.
	GeoTimeout time.Duration
}

func NewService(repo aidrepo.Repository, wellness wellnessrepo.Repository, profiles profilerepo.Repository, gateway ai.Gateway, locator geolocator.Locator, clk clockport.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		wellness: wellness,
		profiles: profiles,
		gateway:  gateway,
		locator:  locator,
		clk:      clk,
		log:      log,
		newRequestID: func() domain.HelpRequestID {
			return domain.HelpRequestID(uuid.NewString())
		},
		newSessionID: func() domain.WellnessSessionID {
			return domain.WellnessSessionID(uuid.NewString())
		},
		GeoTimeout: 5 * time.Second,
	}
}

// SetNewRequestIDForTest overrides request ID generation for deterministic tests.
func (s *Service) SetNewRequestIDForTest(fn func() domain.HelpRequestID) {
	s.newRequestID = fn
}

// SetNewSessionIDForTest overrides wellness session ID generation for deterministic tests.
func (s *Service) SetNewSessionIDForTest(fn func() domain.WellnessSessionID) {
	s.newSessionID = fn
}

// distressCategories lists categories whose requesters get a wellness support
// suggestion logged alongside the request.
var distressCategories = map[domain.Category]bool{
	domain.CategoryEarthquake: true,
	domain.CategoryFlood:      true,
	domain.CategoryMedical:    true,
	domain.CategoryPersonal:   true,
}

// Create files a help request for the session's identity. When the caller
// leaves the category empty, the description is categorized via the AI
// gateway; a gateway failure falls back to the catch-all category. The
// location lookup is bounded by GeoTimeout and a miss files the request with
// no coordinates.
func (s *Service) Create(ctx context.Context, sess session.Session, in CreateInput) (domain.HelpRequest, error) {
	if err := requireRegistered(sess); err != nil {
		return domain.HelpRequest{}, err
	}
	if in.Title == "" {
		return domain.HelpRequest{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid title",
			Details: map[string]any{"title": "must be non-empty"},
		}
	}
	if in.Description == "" {
		return domain.HelpRequest{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid description",
			Details: map[string]any{"description": "must be non-empty"},
		}
	}
	priority := domain.PriorityMedium
	if in.Priority != "" {
		if !domain.ValidPriority(in.Priority) {
			return domain.HelpRequest{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid priority",
				Details: map[string]any{"priority": "must be one of low, medium, high, critical"},
			}
		}
		priority = domain.Priority(in.Priority)
	}

	category := s.resolveCategory(ctx, in)
	coords := s.locate(ctx, in.Location)

	now := s.clk.Now()
	req := domain.HelpRequest{
		ID:             s.newRequestID(),
		Requester:      sess.Identity,
		Title:          in.Title,
		Description:    in.Description,
		Category:       category,
		Priority:       priority,
		Status:         domain.StatusPending,
		Location:       in.Location,
		Coordinates:    coords,
		ContactInfo:    in.ContactInfo,
		PeopleAffected: in.PeopleAffected,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return domain.HelpRequest{}, err
	}

	// Requests filed under distress-adjacent categories also log a wellness
	// support suggestion. This is a second, independent insert: no atomicity
	// with the request, and its failure never unwinds the filed request.
	if distressCategories[category] {
		suggestion := domain.WellnessSession{
			ID:      s.newSessionID(),
			Subject: sess.Identity,
			Type:    domain.SessionAIChat,
			Content: fmt.Sprintf(
				"After requesting help for %s, you might benefit from emotional support. Our AI buddy Saathi is here to help.",
				category),
			Sentiment: "neutral",
			RiskLevel: domain.RiskLow,
			CreatedAt: now,
		}
		if err := s.wellness.Create(ctx, suggestion); err != nil {
			s.log.Warn("support suggestion insert failed",
				zap.String("request", string(req.ID)),
				zap.Error(err))
		}
	}

	return req, nil
}

// List returns help requests, newest first, optionally filtered.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.HelpRequest, error) {
	var filter aidrepo.Filter
	if f.Category != "" {
		filter.Category = domain.ParseCategory(domain.NormalizeLabel(f.Category))
	}
	if f.Priority != "" {
		if !domain.ValidPriority(f.Priority) {
			return nil, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid priority filter",
				Details: map[string]any{"priority": "must be one of low, medium, high, critical"},
			}
		}
		filter.Priority = domain.Priority(f.Priority)
	}
	if f.Status != "" {
		filter.Status = domain.RequestStatus(f.Status)
	}
	return s.repo.List(ctx, filter)
}

// MapData returns what the relief map renders: requests that still need
// attention plus the verified volunteer/ngo profiles with known coordinates.
func (s *Service) MapData(ctx context.Context, sess session.Session, category string) (MapOverlay, error) {
	if err := requireRegistered(sess); err != nil {
		return MapOverlay{}, err
	}
	var filter aidrepo.Filter
	if category != "" {
		filter.Category = domain.ParseCategory(domain.NormalizeLabel(category))
	}
	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return MapOverlay{}, err
	}
	open := make([]domain.HelpRequest, 0, len(requests))
	for _, req := range requests {
		if req.Status == domain.StatusCompleted || req.Status == domain.StatusCancelled {
			continue
		}
		open = append(open, req)
	}
	volunteers, err := s.profiles.ListVolunteers(ctx)
	if err != nil {
		return MapOverlay{}, err
	}
	return MapOverlay{Requests: open, Volunteers: volunteers}, nil
}

// ListMine returns the caller's own requests, newest first.
func (s *Service) ListMine(ctx context.Context, sess session.Session) ([]domain.HelpRequest, error) {
	if err := requireRegistered(sess); err != nil {
		return nil, err
	}
	return s.repo.ListByRequester(ctx, sess.Identity)
}

// Activate moves a pending request to active. Only NGO and admin profiles
// triage the queue.
func (s *Service) Activate(ctx context.Context, sess session.Session, id domain.HelpRequestID) (domain.HelpRequest, error) {
	if err := requireRegistered(sess); err != nil {
		return domain.HelpRequest{}, err
	}
	if !isCoordinator(sess) {
		return domain.HelpRequest{}, &Error{
			Status:  403,
			Code:    "FORBIDDEN",
			Message: "Only NGO and admin accounts can activate requests.",
		}
	}
	req, err := s.getRequest(ctx, id)
	if err != nil {
		return domain.HelpRequest{}, err
	}
	if req.Status != domain.StatusPending {
		return domain.HelpRequest{}, &Error{
			Status:  409,
			Code:    "INVALID_STATUS_TRANSITION",
			Message: "Only pending requests can be activated.",
		}
	}
	return s.transition(ctx, req, domain.StatusActive)
}

// Complete marks a request completed. The requester or a coordinator may
// close it.
func (s *Service) Complete(ctx context.Context, sess session.Session, id domain.HelpRequestID) (domain.HelpRequest, error) {
	if err := requireRegistered(sess); err != nil {
		return domain.HelpRequest{}, err
	}
	req, err := s.getRequest(ctx, id)
	if err != nil {
		return domain.HelpRequest{}, err
	}
	if req.Requester != sess.Identity && !isCoordinator(sess) {
		return domain.HelpRequest{}, &Error{
			Status:  403,
			Code:    "FORBIDDEN",
			Message: "Only the requester or a coordinator can complete a request.",
		}
	}
	if req.Status == domain.StatusCompleted || req.Status == domain.StatusCancelled {
		return domain.HelpRequest{}, &Error{
			Status:  409,
			Code:    "INVALID_STATUS_TRANSITION",
			Message: "The request is already closed.",
		}
	}
	return s.transition(ctx, req, domain.StatusCompleted)
}

func (s *Service) resolveCategory(ctx context.Context, in CreateInput) domain.Category {
	if in.Category != "" {
		return domain.ParseCategory(domain.NormalizeLabel(in.Category))
	}
	label, err := s.gateway.Categorize(ctx, in.Description)
	if err != nil {
		s.log.Warn("categorization failed", zap.Error(err))
		return domain.CategoryPersonal
	}
	return domain.ParseCategory(domain.NormalizeLabel(label))
}

func (s *Service) locate(ctx context.Context, location string) *domain.Coordinates {
	if location == "" || s.locator == nil {
		return nil
	}
	geoCtx, cancel := context.WithTimeout(ctx, s.GeoTimeout)
	defer cancel()
	coords, err := s.locator.Locate(geoCtx, location)
	if err != nil {
		s.log.Warn("geolocation failed", zap.String("location", location), zap.Error(err))
		return nil
	}
	return coords
}

func (s *Service) getRequest(ctx context.Context, id domain.HelpRequestID) (domain.HelpRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, aidrepo.ErrNotFound) {
			return domain.HelpRequest{}, &Error{
				Status:  404,
				Code:    "REQUEST_NOT_FOUND",
				Message: "No help request exists with this id.",
			}
		}
		return domain.HelpRequest{}, err
	}
	return req, nil
}

func (s *Service) transition(ctx context.Context, req domain.HelpRequest, status domain.RequestStatus) (domain.HelpRequest, error) {
	now := s.clk.Now()
	if err := s.repo.UpdateStatus(ctx, req.ID, status, now); err != nil {
		return domain.HelpRequest{}, err
	}
	req.Status = status
	req.UpdatedAt = now
	return req, nil
}

func requireRegistered(sess session.Session) error {
	if sess.Guest {
		return &Error{
			Status:  403,
			Code:    "GUEST_SESSION",
			Message: "Create an account to use community aid.",
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

func isCoordinator(sess session.Session) bool {
	if sess.Profile == nil {
		return false
	}
	return sess.Profile.Role == domain.RoleNGO || sess.Profile.Role == domain.RoleAdmin
}
