// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All setup goes through db.GetSchemaSQL() so tests always run
// against the authoritative schema; do not hardcode CREATE TABLE statements
// in test files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/garland/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedDeployment inserts a test deployment with its three zones and returns
// its ID.
func seedDeployment(t *testing.T, db *sql.DB, id, status string) string {
	t.Helper()
	if id == "" {
		id = "DEP-2026-CHRISTMAS"
	}
	if status == "" {
		status = "active_setup"
	}
	_, err := db.Exec("INSERT INTO deployments (id, season, year, status) VALUES (?, 'CHRISTMAS', 2026, ?)", id, status)
	if err != nil {
		t.Fatalf("failed to seed deployment: %v", err)
	}
	zones := []struct {
		code, name, receptacle string
	}{
		{"FY", "Front Yard", "RCP-FY-1"},
		{"BY", "Back Yard", "RCP-BY-1"},
		{"SW", "Side Walkway", "RCP-SW-1"},
	}
	for i, z := range zones {
		_, err := db.Exec("INSERT INTO zones (deployment_id, code, name, receptacle_id, position) VALUES (?, ?, ?, ?, ?)",
			id, z.code, z.name, z.receptacle, i)
		if err != nil {
			t.Fatalf("failed to seed zone %s: %v", z.code, err)
		}
	}
	return id
}

// seedSession inserts a test session and returns its ID.
func seedSession(t *testing.T, db *sql.DB, id, deploymentID, zoneCode string, closed bool) string {
	t.Helper()
	if id == "" {
		id = "SESS-001"
	}
	if deploymentID == "" {
		deploymentID = "DEP-2026-CHRISTMAS"
	}
	if zoneCode == "" {
		zoneCode = "FY"
	}
	closedFlag := 0
	if closed {
		closedFlag = 1
	}
	_, err := db.Exec("INSERT INTO sessions (id, deployment_id, zone_code, start_time, closed) VALUES (?, ?, ?, ?, ?)",
		id, deploymentID, zoneCode, time.Now().UTC(), closedFlag)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return id
}
