package geolocator

import (
	"context"

	"github.com/Harsh-Shrivastava1/sahara/internal/domain"
)

// Locator resolves a free-text location to coordinates.
//
// Lookups are best-effort: implementations bound the call with a short
// timeout and return (nil, nil) on timeout, denial or miss. A nil result is
// "no location known", never an error the caller must handle.
type Locator interface {
	Locate(ctx context.Context, location string) (*domain.Coordinates, error)
}
