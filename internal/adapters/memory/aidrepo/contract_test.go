package aidrepo

import (
	"testing"

	"github.com/Harsh-Shrivastava1/sahara/internal/adapters/contracttest"
	aidrepoport "github.com/Harsh-Shrivastava1/sahara/internal/ports/out/aidrepo"
)

func TestContract_AidRepo(t *testing.T) {
	contracttest.RunAidRepo(t, func(t *testing.T) (aidrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
