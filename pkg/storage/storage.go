// Package storage is the sqlite-backed cache for scraped meal details.
// Detail pages change at most daily, so cached rows are served until
// their TTL (a day in practice) runs out.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cumenu/yemekhane/pkg/menu"
)

// DefaultTTL matches the detail pages' daily change cadence.
const DefaultTTL = 24 * time.Hour

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS meal_details (
  id         TEXT PRIMARY KEY,
  payload    TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// GetMealDetail returns the cached detail for id if it was fetched
// within ttl. A miss or a stale row returns (nil, nil); the stale row
// stays put until the next PutMealDetail overwrites it.
func (d *DB) GetMealDetail(ctx context.Context, id string, ttl time.Duration) (*menu.MealDetail, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	var payload, fetchedAtStr string
	err := d.sql.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM meal_details WHERE id = ?", id,
	).Scan(&payload, &fetchedAtStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Try RFC3339 then the bare SQLite timestamp format
	fetchedAt, perr := time.Parse(time.RFC3339, fetchedAtStr)
	if perr != nil {
		fetchedAt, perr = time.Parse("2006-01-02 15:04:05", fetchedAtStr)
	}
	if perr != nil || time.Since(fetchedAt) > ttl {
		return nil, nil
	}

	var detail menu.MealDetail
	if err := json.Unmarshal([]byte(payload), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// PutMealDetail upserts a freshly scraped detail with the current time.
func (d *DB) PutMealDetail(ctx context.Context, detail *menu.MealDetail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx, `
INSERT INTO meal_details(id, payload, fetched_at) VALUES(?, ?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, detail.ID, string(payload), time.Now().UTC().Format(time.RFC3339))
	return err
}
