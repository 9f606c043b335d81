package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/store"
)

// DefaultInvitationRetention is how long expired and used invitations are
// kept after they stop being acceptable. Within the window an expired token
// still reports ErrInvitationExpired instead of ErrInvitationNotFound.
const DefaultInvitationRetention = 30 * 24 * time.Hour

// HousekeepingService periodically purges invitations that left the
// retention window and signing keys past their verification window.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to 1 hour, a non-positive retention to
// DefaultInvitationRetention.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultInvitationRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("retention", s.Retention),
	)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup purges invitations that expired or were used before
// now minus the retention window and returns how many rows went. Signing
// keys that no longer verify are deleted too.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	cutoff := now.UTC().Add(-s.Retention)

	n, err := s.Store.Invitations().PurgeInvitations(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to purge invitations", slog.Any("error", err))
		return 0
	}

	keys, err := s.Store.SigningKeys().DeleteExpiredSigningKeys(ctx, now.UTC())
	if err != nil {
		s.Logger.Error("failed to delete expired signing keys", slog.Any("error", err))
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("invitations_purged", n),
		slog.Int64("signing_keys_deleted", keys),
		slog.Time("cutoff", cutoff),
	)
	return n
}
