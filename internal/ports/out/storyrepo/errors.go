package storyrepo

import "errors"

var (
	// ErrNotFound indicates the requested story does not exist.
	ErrNotFound = errors.New("story not found")

	// ErrAlreadyExists indicates a story already exists with the provided ID.
	ErrAlreadyExists = errors.New("story already exists")
)
