package aidrepo

import (
	"testing"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/contracttest"
	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/postgres/testutil"
	aidrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
)

func TestContract_PostgresAidRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunAidRepo(t, func(t *testing.T) (aidrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
