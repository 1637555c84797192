package upsmonitor

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JohnGooler/UPS-monitor/internal/cache"
	"github.com/JohnGooler/UPS-monitor/internal/device"
	"github.com/JohnGooler/UPS-monitor/pkg/ups"
)

// CollectData returns the current snapshot, preferring a fresh cache entry
// over a live device query. A successful live query repopulates the cache.
// A nil return means no data could be obtained from either source; every
// failure on the way is logged, none is fatal.
func CollectData(store cache.Store, querier device.Querier) ups.Snapshot {
	snap, err := store.Read()
	if err != nil {
		log.Debug().Err(err).Msg("cache read failed, treating as absent")
	}
	if snap != nil {
		return snap
	}

	snap, err = querier.Query()
	if err != nil {
		log.Warn().Err(err).Msg("ups query failed")
		return nil
	}
	if err := store.Write(snap); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
	return snap
}

// UpdateCache forces a fresh device query and overwrites the cache with the
// result. The existing cache entry is left untouched when the query fails. A
// failed cache write is logged but not returned; the query itself succeeded.
func UpdateCache(store cache.Store, querier device.Querier) error {
	snap, err := querier.Query()
	if err != nil {
		return fmt.Errorf("ups query failed: %w", err)
	}
	if err := store.Write(snap); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
	return nil
}

// GetMetric looks up a single metric through the cache-or-query chain. The
// second return is false when no data was obtained or the key is absent.
func GetMetric(store cache.Store, querier device.Querier, key string) (string, bool) {
	snap := CollectData(store, querier)
	if snap == nil {
		return "", false
	}
	value, ok := snap[key]
	if !ok {
		return "", false
	}
	return ups.FormatValue(value), true
}
