// Package sqlite implements the cache store on a SQLite database. The file
// backend remains the default; this backend is for hosts where several
// monitoring consumers share the cache and a real database file is easier to
// inspect with standard tooling.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/JohnGooler/UPS-monitor/internal/cache"
	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

const TABLE_NAME = "ups_monitor_cache"

// Compile-time interface check.
var _ cache.Store = (*Store)(nil)

// Store keeps the single cache entry as one row, replaced on every write.
type Store struct {
	Path string
	TTL  time.Duration
	Now  func() time.Time
}

// NewStore returns a sqlite-backed Store using the wall clock.
func NewStore(path string, ttl time.Duration) *Store {
	return &Store{Path: path, TTL: ttl, Now: time.Now}
}

func createCacheTableIfNotExists(path string) (*sqlx.DB, error) {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id 			INTEGER PRIMARY KEY CHECK (id = 0),
		timestamp 	INTEGER NOT NULL,
		payload 	TEXT NOT NULL
	);
	`, TABLE_NAME)
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %v", err)
	}
	return db, nil
}

func (s *Store) Read() (ups.Snapshot, error) {
	// check if path exists first to prevent creating the database
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := sqlx.Open("sqlite3", s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	defer db.Close()

	var row struct {
		Timestamp int64  `db:"timestamp"`
		Payload   string `db:"payload"`
	}
	err = db.Get(&row, fmt.Sprintf("SELECT timestamp, payload FROM %s WHERE id = 0;", TABLE_NAME))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cache entry: %v", err)
	}
	if s.Now().Unix()-row.Timestamp >= int64(s.TTL.Seconds()) {
		return nil, nil
	}

	var snap ups.Snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse cache payload: %v", err)
	}
	return snap, nil
}

func (s *Store) Write(snap ups.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal cache payload: %v", err)
	}

	db, err := createCacheTableIfNotExists(s.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	sql := fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, timestamp, payload)
	VALUES (0, :timestamp, :payload);`, TABLE_NAME)
	_, err = db.NamedExec(sql, map[string]any{
		"timestamp": s.Now().Unix(),
		"payload":   string(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %v", err)
	}
	return nil
}
