package profilerepo

import (
	"context"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Patch is a partial profile update. Nil fields are left untouched; the
// tri-state distinction (omitted vs null) is resolved at the HTTP layer and
// arrives here already flattened to "set this" / "clear this" / "leave it".
type Patch struct {
	FullName *string
	Phone    *string
	Location *string

	// ClearCoordinates clears the pair; Coordinates sets it. Setting both is
	// a caller bug and Coordinates wins.
	Coordinates      *domain.Coordinates
	ClearCoordinates bool

	ServicesOffered *[]string
}

// Repository provides access to persisted profiles, keyed by the auth
// provider's subject. Rows are created provider-side on sign-up; this
// repository only reads and patches them.
type Repository interface {
	GetBySubject(ctx context.Context, subject domain.SubjectID) (domain.Profile, error)

	// Update applies a partial update and returns the stored row after the
	// write. Implementations must not apply any field when the write fails.
	Update(ctx context.Context, subject domain.SubjectID, p Patch) (domain.Profile, error)

	// ListVolunteers returns verified volunteer/ngo profiles with known
	// coordinates, for the relief map overlay.
	ListVolunteers(ctx context.Context) ([]domain.Profile, error)
}
