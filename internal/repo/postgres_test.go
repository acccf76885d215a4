package repo_test

import (
	"testing"

	"github.com/pkordes/wanderlust/testutil"
)

// Each subtest gets its own rolled-back transaction.
// Requires TEST_DATABASE_URL; TestMain applies the migrations.
func TestPostgresKV(t *testing.T) {
	runKVContract(t, testutil.NewTxKV)
}
