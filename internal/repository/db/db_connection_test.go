package db

import (
	"testing"
)

func TestInitDB_InMemoryCreatesSchema(t *testing.T) {
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"activity_events", "users", "maintenance_requests"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// idempotent
	if err := ensureSchema(db); err != nil {
		t.Fatalf("second ensureSchema: %v", err)
	}
}
