package httpapi

import (
	"time"

	"github.com/Harsh-Shrivastava1/sahara/internal/app/aid"
	"github.com/Harsh-Shrivastava1/sahara/internal/app/session"
	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

type coordinatesDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func coordinatesFromDomain(c *domain.Coordinates) *coordinatesDTO {
	if c == nil {
		return nil
	}
	return &coordinatesDTO{Latitude: c.Latitude, Longitude: c.Longitude}
}

type profileDTO struct {
	UserID          string          `json:"userId"`
	Email           string          `json:"email"`
	FullName        *string         `json:"fullName"`
	Phone           *string         `json:"phone"`
	Role            string          `json:"role"`
	Location        *string         `json:"location"`
	Coordinates     *coordinatesDTO `json:"coordinates"`
	ServicesOffered []string        `json:"servicesOffered"`
	TrustLevel      int             `json:"trustLevel"`
	BadgesEarned    int             `json:"badgesEarned"`
	Badges          []string        `json:"badges"`
	Verified        bool            `json:"verified"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func profileFromDomain(p domain.Profile) profileDTO {
	services := p.ServicesOffered
	if services == nil {
		services = []string{}
	}
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	return profileDTO{
		UserID:          string(p.UserID),
		Email:           p.Email,
		FullName:        p.FullName,
		Phone:           p.Phone,
		Role:            string(p.Role),
		Location:        p.Location,
		Coordinates:     coordinatesFromDomain(p.Coordinates),
		ServicesOffered: services,
		TrustLevel:      p.TrustLevel,
		BadgesEarned:    p.BadgesEarned,
		Badges:          badges,
		Verified:        p.Verified,
		CreatedAt:       p.CreatedAt,
	}
}

type sessionDTO struct {
	Authenticated bool        `json:"authenticated"`
	Guest         bool        `json:"guest"`
	UserID        *string     `json:"userId"`
	Profile       *profileDTO `json:"profile"`
}

func sessionFromDomain(s session.Session) sessionDTO {
	out := sessionDTO{
		Authenticated: s.Authenticated(),
		Guest:         s.Guest,
	}
	if s.Identity != "" {
		id := string(s.Identity)
		out.UserID = &id
	}
	if s.Profile != nil {
		p := profileFromDomain(*s.Profile)
		out.Profile = &p
	}
	return out
}

type helpRequestDTO struct {
	ID             string          `json:"id"`
	Requester      string          `json:"requesterId"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Priority       string          `json:"priority"`
	Status         string          `json:"status"`
	Location       string          `json:"location"`
	Coordinates    *coordinatesDTO `json:"coordinates"`
	ContactInfo    string          `json:"contactInfo"`
	PeopleAffected int             `json:"peopleAffected"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func helpRequestFromDomain(r domain.HelpRequest) helpRequestDTO {
	return helpRequestDTO{
		ID:             string(r.ID),
		Requester:      string(r.Requester),
		Title:          r.Title,
		Description:    r.Description,
		Category:       string(r.Category),
		Priority:       string(r.Priority),
		Status:         string(r.Status),
		Location:       r.Location,
		Coordinates:    coordinatesFromDomain(r.Coordinates),
		ContactInfo:    r.ContactInfo,
		PeopleAffected: r.PeopleAffected,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func helpRequestsFromDomain(rs []domain.HelpRequest) []helpRequestDTO {
	out := make([]helpRequestDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, helpRequestFromDomain(r))
	}
	return out
}

type mapOverlayDTO struct {
	Requests   []helpRequestDTO `json:"requests"`
	Volunteers []profileDTO     `json:"volunteers"`
}

func mapOverlayFromDomain(o aid.MapOverlay) mapOverlayDTO {
	volunteers := make([]profileDTO, 0, len(o.Volunteers))
	for _, p := range o.Volunteers {
		volunteers = append(volunteers, profileFromDomain(p))
	}
	return mapOverlayDTO{
		Requests:   helpRequestsFromDomain(o.Requests),
		Volunteers: volunteers,
	}
}

type storyDTO struct {
	ID        string    `json:"id"`
	AuthorID  *string   `json:"authorId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Anonymous bool      `json:"anonymous"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

func storyFromDomain(s domain.Story) storyDTO {
	out := storyDTO{
		ID:        string(s.ID),
		Title:     s.Title,
		Content:   s.Content,
		Category:  s.Category,
		Anonymous: s.Anonymous,
		Likes:     s.Likes,
		CreatedAt: s.CreatedAt,
	}
	if s.Author != nil {
		id := string(*s.Author)
		out.AuthorID = &id
	}
	return out
}

type sentimentDTO struct {
	Sentiment       string `json:"sentiment"`
	RiskLevel       string `json:"riskLevel"`
	NeedsEscalation bool   `json:"needsEscalation"`
}

type wellnessSessionDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"sessionType"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
	RiskLevel string    `json:"riskLevel"`
	Escalated bool      `json:"escalated"`
	CreatedAt time.Time `json:"createdAt"`
}

func wellnessSessionFromDomain(s domain.WellnessSession) wellnessSessionDTO {
	return wellnessSessionDTO{
		ID:        string(s.ID),
		Type:      string(s.Type),
		Content:   s.Content,
		Sentiment: s.Sentiment,
		RiskLevel: string(s.RiskLevel),
		Escalated: s.Escalated,
		CreatedAt: s.CreatedAt,
	}
}
