package domain

import "time"

// Role describes what a registered identity is allowed to do on the platform.
type Role string

const (
	RoleUser      Role = "user"
	RoleVolunteer Role = "volunteer"
	RoleNGO       Role = "ngo"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored label to a Role. Unknown labels fall back to RoleUser
// so a relaxed row never locks a profile out of the basic views.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleVolunteer, RoleNGO, RoleAdmin:
		return Role(s)
	default:
		return RoleUser
	}
}

// Coordinates is an optional latitude/longitude pair. Both fields are set or
// the value is absent; a nil *Coordinates means "no location known".
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Profile is the durable record describing a registered identity.
type Profile struct {
	UserID SubjectID

	Email    string
	FullName *string
	Phone    *string
	Role     Role

	// Location is free text; Coordinates carries the optional geocoded pair.
	Location    *string
	Coordinates *Coordinates

	ServicesOffered []string

	// TrustLevel and BadgesEarned are reputation metrics mutated by
	// gamification logic outside this service.
	TrustLevel   int
	BadgesEarned int
	Badges       []string

	Verified bool

	CreatedAt time.Time
}

// GuestProfile synthesizes the fixed placeholder profile used by guest
// sessions. It carries no identity and is never persisted.
func GuestProfile(now time.Time) Profile {
	name := "Guest User"
	return Profile{
		Email:           "guest@example.com",
		FullName:        &name,
		Role:            RoleUser,
		ServicesOffered: []string{},
		TrustLevel:      0,
		BadgesEarned:    0,
		Badges:          []string{},
		Verified:        false,
		CreatedAt:       now,
	}
}
