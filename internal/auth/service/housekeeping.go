package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/store"
)

// HousekeepingService periodically deletes revocation records whose token
// has expired anyway, keeping the revoked_tokens table from growing without
// bound. Nothing else is swept; user and team rows have no expiry.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// Non-blocking; call Stop() to shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes expired revocation records. Failures are logged, not fatal;
// the next tick tries again.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	deleted, err := s.Store.RevokedTokens().DeleteExpiredRevokedTokens(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to delete expired revocation records", "error", err)
		return
	}
	if deleted > 0 {
		s.Logger.Info("housekeeping sweep completed", "deleted", deleted)
	}
}
