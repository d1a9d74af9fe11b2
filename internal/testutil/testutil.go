// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"newsverify/internal/db"
)

// TestDB creates a migrated test database connection and returns a cleanup
// function. The test is skipped unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	database.Pool.Exec(ctx, "DELETE FROM prediction_outcomes")

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM prediction_outcomes")
		database.Close()
	}

	return database, cleanup
}

// SeedOutcome records n predictions of label in mode.
func SeedOutcome(t *testing.T, database *db.DB, label, mode string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := database.IncrementOutcome(context.Background(), label, mode); err != nil {
			t.Fatalf("failed to seed outcome %s/%s: %v", mode, label, err)
		}
	}
}
