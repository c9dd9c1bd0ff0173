package aidrepo

import "errors"

var (
	// ErrNotFound indicates the requested help request does not exist.
	ErrNotFound = errors.New("help request not found")

	// ErrAlreadyExists indicates a help request already exists with the provided ID.
	ErrAlreadyExists = errors.New("help request already exists")
)
