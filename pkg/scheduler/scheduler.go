package scheduler

import (
	"context"
	"time"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/sirupsen/logrus"
)

// SnapshotRefresher is the part of the sales service the scheduler drives.
type SnapshotRefresher interface {
	RefreshSnapshot(ctx context.Context) (*entity.CatalogStats, error)
}

type Scheduler struct {
	salesService SnapshotRefresher
	interval     time.Duration
}

func NewScheduler(salesService SnapshotRefresher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		salesService: salesService,
		interval:     interval,
	}
}

// Start refreshes the snapshot every interval until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.WithField("interval", s.interval).Info("Snapshot scheduler started")

	for {
		select {
		case <-ticker.C:
			if _, err := s.salesService.RefreshSnapshot(ctx); err != nil {
				logrus.WithError(err).Error("Error refreshing catalog snapshot")
			}
		case <-ctx.Done():
			logrus.Info("Snapshot scheduler stopped")
			return
		}
	}
}
