package offline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/domain/vitals"
	"github.com/sanavia/clinica/pkg/metrics"
)

// Sweeper periodically replays buffered records. Each due item is retried
// independently; an item leaves the buffer only on confirmed persistence.
type Sweeper struct {
	buf      *Buffer
	repo     vitals.Repository
	interval time.Duration
	log      *zap.Logger
	col      *metrics.Collector
}

func NewSweeper(buf *Buffer, repo vitals.Repository, interval time.Duration, log *zap.Logger, col *metrics.Collector) *Sweeper {
	return &Sweeper{buf: buf, repo: repo, interval: interval, log: log, col: col}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep retries every due item once.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()
	due, err := s.buf.Due(now)
	if err != nil {
		s.log.Error("failed to read offline buffer", zap.Error(err))
		return
	}

	for _, item := range due {
		rec := item.Record
		writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := s.repo.Create(writeCtx, &rec)
		cancel()

		if err != nil {
			s.col.OfflineRetryFailures.Inc()
			s.log.Warn("offline record retry failed",
				zap.Error(err),
				zap.String("item_id", item.ID.String()),
				zap.Int("attempts", item.Attempts+1),
			)
			if derr := s.buf.Defer(item.ID, now); derr != nil {
				s.log.Error("failed to reschedule offline item", zap.Error(derr))
			}
			continue
		}

		if aerr := s.buf.Ack(item.ID); aerr != nil {
			s.log.Error("failed to remove replayed offline item", zap.Error(aerr))
			continue
		}
		s.col.OfflineReplayedTotal.Inc()
		s.log.Info("offline record replayed",
			zap.String("item_id", item.ID.String()),
			zap.String("patient_id", rec.PatientID.String()),
		)
	}

	if depth, err := s.buf.Len(); err == nil {
		s.col.OfflineBufferDepth.Set(float64(depth))
	}
}
