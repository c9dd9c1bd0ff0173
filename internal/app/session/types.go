package session

import "github.com/Harsh-Shrivastava1/sahara/internal/domain"

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// SignUpInput carries credentials plus the profile fields the provider-side
// trigger consumes when it creates the profile row.
type SignUpInput struct {
	Email    string
	Password string

	FullName string
	Phone    *string
	Role     domain.Role
	Location *string
}

type SignInInput struct {
	Email    string
	Password string
}

// UpdateProfileInput is a partial profile update.
type UpdateProfileInput struct {
	// FullName is optional and cannot be null.
	FullName Optional[string]

	Phone    Optional[string]
	Location Optional[string]

	// Coordinates may be null, which clears the stored pair.
	Coordinates Optional[domain.Coordinates]

	ServicesOffered Optional[[]string]
}
