package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// FileStore keeps the cache entry in a single JSON file:
//
//	{"timestamp": 1718000000, "values": {...}}
//
// This matches the on-disk format consumed by the existing deployment, so a
// cache file written by the old poller stays readable.
// Compile-time interface check.
var _ Store = (*FileStore)(nil)

type FileStore struct {
	Path string
	TTL  time.Duration

	// Now is overridable so tests can simulate clock skew.
	Now func() time.Time
}

// NewFileStore returns a FileStore using the wall clock.
func NewFileStore(path string, ttl time.Duration) *FileStore {
	return &FileStore{Path: path, TTL: ttl, Now: time.Now}
}

func (s *FileStore) Read() (ups.Snapshot, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if s.Now().Unix()-entry.Timestamp >= int64(s.TTL.Seconds()) {
		return nil, nil
	}
	return entry.Values, nil
}

func (s *FileStore) Write(snap ups.Snapshot) error {
	b, err := json.Marshal(Entry{Timestamp: s.Now().Unix(), Values: snap})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := os.WriteFile(s.Path, b, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
