// Package cache persists the last successful UPS snapshot so repeated CLI
// invocations (Zabbix polls several items per minute) do not hammer the
// serial port. Entries are freshness-bounded approximations, not a source of
// truth: stale or unreadable entries simply read as absent.
package cache

import (
	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// DefaultTTL is the maximum age of a cache entry before a fresh device query
// is required.
const DefaultTTL = 120 // seconds

// Entry is the single persisted cache record.
type Entry struct {
	Timestamp int64        `json:"timestamp" db:"timestamp"`
	Values    ups.Snapshot `json:"values"`
}

// Store reads and writes the single cached snapshot.
//
// Read returns (nil, nil) when no fresh entry exists, and a non-nil error
// only for diagnostic purposes; callers treat every nil snapshot the same
// way regardless of the error. Write overwrites the entry; a failed write is
// not fatal since the caller already holds the fresh data.
type Store interface {
	Read() (ups.Snapshot, error)
	Write(ups.Snapshot) error
}
