package upsmonitor

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/JohnGooler/UPS-monitor/internal/cache"
	"github.com/JohnGooler/UPS-monitor/internal/device"
)

// NewRouter builds the read-only HTTP surface for the serve command. A mutex
// serializes snapshot collection so concurrent requests cannot race on the
// serial port; the port itself is still opened per query and released before
// the handler returns.
func NewRouter(store cache.Store, querier device.Querier) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.StripSlashes,
		middleware.Timeout(30*time.Second),
	)

	var mu sync.Mutex

	router.Get("/v1/metrics", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		snap := CollectData(store, querier)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if snap == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"error": "no ups data"})
			return
		}
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Error().Err(err).Msg("failed to encode metrics response")
		}
	})

	router.Get("/v1/health", func(w http.ResponseWriter, r *http.Request) {
		cached, err := store.Read()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"cache_fresh": err == nil && cached != nil,
		})
	})

	return router
}

// RunDaemon serves the router until the listener fails.
func RunDaemon(endpoint string, store cache.Store, querier device.Querier) error {
	log.Info().Str("endpoint", endpoint).Msg("starting daemon")
	err := http.ListenAndServe(endpoint, NewRouter(store, querier))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
