package storyrepo

import (
	"testing"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/contracttest"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/testutil"
	storyrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/storyrepo"
)

func TestContract_PostgresStoryRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunStoryRepo(t, func(t *testing.T) (storyrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
