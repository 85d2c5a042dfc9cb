package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

const defaultAggregateInterval = 5 * time.Minute

// AuditStats periodically aggregates the audit trail into gauges.
// It only ever reads: the audit table has no update or delete path
// anywhere in the system.
type AuditStats struct {
	repo     repository.AuditRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	interval time.Duration
}

func NewAuditStats(repo repository.AuditRepository, m *metrics.Metrics,
	logger zerolog.Logger, interval time.Duration) *AuditStats {
	if interval <= 0 {
		interval = defaultAggregateInterval
	}
	return &AuditStats{
		repo:     repo,
		metrics:  m,
		logger:   logger.With().Str("component", "auditstats").Logger(),
		interval: interval,
	}
}

func (w *AuditStats) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.aggregate(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("audit aggregator stopped")
			return
		case <-ticker.C:
			w.aggregate(ctx)
		}
	}
}

func (w *AuditStats) aggregate(ctx context.Context) {
	counts, err := w.repo.CountsByAction(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to aggregate audit rows")
		return
	}
	for action, n := range counts {
		w.metrics.AuditRowsStored.WithLabelValues(action).Set(float64(n))
	}
}
