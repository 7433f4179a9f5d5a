package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/DavidRSR1/verifica/internal/database"
)

// SetupTestDB creates an isolated in-memory SQLite database with the full
// schema applied. The database is destroyed when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A unique name per test keeps parallel tests from sharing one
	// shared-cache in-memory database.
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := database.Open(dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
