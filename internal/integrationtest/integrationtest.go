// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	_ "github.com/lib/pq"

	"github.com/go-banco/banco/pkg/configpkg"
	"github.com/go-banco/banco/pkg/dbpkg"
)

// SetupTX sets up a database transaction to be used in repository tests.
// Once the test is done it rolls the transaction back, leaving the database
// untouched. Tests are skipped when no Postgres database is configured or
// reachable, so the suite stays runnable without one.
func SetupTX(t *testing.T, configPath string) *sql.Tx {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Skipf("config unavailable, skipping db test: %v", err)
	}

	if config.DBDriver != "postgres" {
		t.Skipf("db driver %q is not postgres, skipping db test", config.DBDriver)
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Skipf("db unreachable, skipping db test: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
