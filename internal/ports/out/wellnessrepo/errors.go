package wellnessrepo

import "errors"

var (
	// ErrAlreadyExists indicates a session already exists with the provided ID.
	ErrAlreadyExists = errors.New("wellness session already exists")
)
