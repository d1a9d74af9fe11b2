// Package jobs runs background work alongside the HTTP server.
package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotChecked is reported until the first probe completes.
var ErrNotChecked = errors.New("store not checked yet")

const probeTimeout = 3 * time.Second

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusFunc observes each probe result.
type StatusFunc func(up bool)

// StoreHealthChecker probes the outcome store on an interval and caches the
// result, so health requests never wait on the database.
type StoreHealthChecker struct {
	store    Pinger
	interval time.Duration
	log      *zap.Logger
	onStatus StatusFunc

	mu      sync.RWMutex
	lastErr error
}

// NewStoreHealthChecker creates a new checker. onStatus may be nil.
func NewStoreHealthChecker(store Pinger, interval time.Duration, log *zap.Logger, onStatus StatusFunc) *StoreHealthChecker {
	return &StoreHealthChecker{
		store:    store,
		interval: interval,
		log:      log,
		onStatus: onStatus,
		lastErr:  ErrNotChecked,
	}
}

// Start begins the background probe loop and blocks until ctx is done.
func (h *StoreHealthChecker) Start(ctx context.Context) {
	h.log.Info("store health checker started", zap.Duration("interval", h.interval))

	// Run immediately on start
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info("store health checker stopped")
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Check probes the store once and records the result.
func (h *StoreHealthChecker) Check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := h.store.Ping(probeCtx)

	h.mu.Lock()
	wasUp := h.lastErr == nil
	h.lastErr = err
	h.mu.Unlock()

	switch {
	case err != nil && wasUp:
		h.log.Warn("outcome store unreachable", zap.Error(err))
	case err == nil && !wasUp:
		h.log.Info("outcome store reachable")
	}

	if h.onStatus != nil {
		h.onStatus(err == nil)
	}
}

// Ping returns the cached result of the last probe.
func (h *StoreHealthChecker) Ping(context.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}
