package wellnessrepo

import (
	"testing"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/contracttest"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/testutil"
	wellnessrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/wellnessrepo"
)

func TestContract_PostgresWellnessRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunWellnessRepo(t, func(t *testing.T) (wellnessrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
