package upsmonitor

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/JohnGooler/UPS-monitor/internal/cache"
	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// fakeQuerier returns a canned snapshot or error and counts calls.
type fakeQuerier struct {
	snap  ups.Snapshot
	err   error
	calls int
}

func (q *fakeQuerier) Query() (ups.Snapshot, error) {
	q.calls++
	if q.err != nil {
		return nil, q.err
	}
	return q.snap, nil
}

func testSnapshot() ups.Snapshot {
	return ups.Snapshot{
		"input_voltage":  229.0,
		"battery_charge": 100.0,
		"utility_fail":   0.0,
	}
}

func newTestStore(t *testing.T) *cache.FileStore {
	t.Helper()
	return cache.NewFileStore(filepath.Join(t.TempDir(), "ups_cache.json"), cache.DefaultTTL*time.Second)
}

func TestCollectDataPrefersCache(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write(testSnapshot()); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	querier := &fakeQuerier{snap: ups.Snapshot{"input_voltage": 0.0}}
	got := CollectData(store, querier)
	if !reflect.DeepEqual(got, testSnapshot()) {
		t.Errorf("Expected cached snapshot, got %v", got)
	}
	if querier.calls != 0 {
		t.Errorf("Expected no device query with a fresh cache, got %d", querier.calls)
	}
}

func TestCollectDataFallsBackToQueryAndPopulatesCache(t *testing.T) {
	store := newTestStore(t)
	querier := &fakeQuerier{snap: testSnapshot()}

	got := CollectData(store, querier)
	if !reflect.DeepEqual(got, testSnapshot()) {
		t.Errorf("Expected live snapshot, got %v", got)
	}
	if querier.calls != 1 {
		t.Errorf("Expected exactly one device query, got %d", querier.calls)
	}

	cached, err := store.Read()
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}
	if !reflect.DeepEqual(cached, testSnapshot()) {
		t.Errorf("Expected cache populated with live snapshot, got %v", cached)
	}
}

func TestCollectDataNoSources(t *testing.T) {
	store := newTestStore(t)
	querier := &fakeQuerier{err: fmt.Errorf("port unavailable")}

	if got := CollectData(store, querier); got != nil {
		t.Errorf("Expected nil snapshot, got %v", got)
	}
}

func TestUpdateCacheFailureLeavesCacheUntouched(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write(testSnapshot()); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	querier := &fakeQuerier{err: fmt.Errorf("port unavailable")}
	if err := UpdateCache(store, querier); err == nil {
		t.Errorf("Expected an error from a failing transport")
	}

	cached, err := store.Read()
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}
	if !reflect.DeepEqual(cached, testSnapshot()) {
		t.Errorf("Expected prior cache entry untouched, got %v", cached)
	}
}

func TestUpdateCacheOverwritesStaleEntry(t *testing.T) {
	store := newTestStore(t)
	stale := ups.Snapshot{"input_voltage": 100.0}
	if err := store.Write(stale); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}

	querier := &fakeQuerier{snap: testSnapshot()}
	if err := UpdateCache(store, querier); err != nil {
		t.Fatalf("Failed to update cache: %v", err)
	}

	cached, err := store.Read()
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}
	if !reflect.DeepEqual(cached, testSnapshot()) {
		t.Errorf("Expected cache overwritten with fresh snapshot, got %v", cached)
	}
}

func TestGetMetric(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write(testSnapshot()); err != nil {
		t.Fatalf("Failed to seed cache: %v", err)
	}
	querier := &fakeQuerier{}

	value, ok := GetMetric(store, querier, "battery_charge")
	if !ok {
		t.Fatalf("Expected battery_charge to resolve")
	}
	if value != "100" {
		t.Errorf("Expected value 100, got %s", value)
	}

	if _, ok := GetMetric(store, querier, "no_such_metric"); ok {
		t.Errorf("Expected missing key to report not found")
	}
}
