package database

import (
	"path/filepath"
	"testing"
	"time"
)

// setupTestDB opens a throwaway sqlite database in a per-test temp
// directory. The schema bootstrap in NewDB gives it the full set of tables.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(Config{
		Type:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func insertTestEvent(t *testing.T, db *DB, riskType string, eventTime time.Time, imageCount int) int64 {
	t.Helper()

	result, err := db.conn.Exec(
		`INSERT INTO events (risk_type, thumbnail_url, event_time, image_count) VALUES ($1, $2, $3, $4)`,
		riskType, "https://cdn.example.com/thumb.jpg", eventTime, imageCount,
	)
	if err != nil {
		t.Fatalf("Failed to insert test event: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get event id: %v", err)
	}
	return id
}

func insertTestEventImage(t *testing.T, db *DB, eventID int64, imageURL string, timestamp time.Time) int64 {
	t.Helper()

	result, err := db.conn.Exec(
		`INSERT INTO event_images (event_id, image_url, timestamp) VALUES ($1, $2, $3)`,
		eventID, imageURL, timestamp,
	)
	if err != nil {
		t.Fatalf("Failed to insert test event image: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get image id: %v", err)
	}
	return id
}

func insertTestCamera(t *testing.T, db *DB, name, streamURL string, active bool) int64 {
	t.Helper()

	isActive := 0
	if active {
		isActive = 1
	}
	result, err := db.conn.Exec(
		`INSERT INTO cameras (name, stream_url, is_active) VALUES ($1, $2, $3)`,
		name, streamURL, isActive,
	)
	if err != nil {
		t.Fatalf("Failed to insert test camera: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get camera id: %v", err)
	}
	return id
}
