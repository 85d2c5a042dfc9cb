package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/email"
	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/messaging"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 30 * time.Second
)

// Notifier is the outbox dispatcher: it polls unsent notification
// rows, delivers them, and marks them sent. A row that fails delivery
// stays unsent and is retried on the next pass.
type Notifier struct {
	repo         repository.NotificationRepository
	userRepo     repository.UserRepository
	emailSvc     email.Service
	broker       messaging.Broker
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	batchSize    int
	pollInterval time.Duration
}

func NewNotifier(repo repository.NotificationRepository, userRepo repository.UserRepository,
	emailSvc email.Service, broker messaging.Broker, m *metrics.Metrics,
	logger zerolog.Logger, batchSize int, pollInterval time.Duration) *Notifier {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Notifier{
		repo:         repo,
		userRepo:     userRepo,
		emailSvc:     emailSvc,
		broker:       broker,
		metrics:      m,
		logger:       logger.With().Str("component", "notifier").Logger(),
		batchSize:    batchSize,
		pollInterval: pollInterval,
	}
}

func (w *Notifier) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info().Dur("poll_interval", w.pollInterval).Msg("notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("notification dispatcher stopped")
			return
		case <-ticker.C:
			w.dispatchBatch(ctx)
		}
	}
}

func (w *Notifier) dispatchBatch(ctx context.Context) {
	pending, err := w.repo.CountUnsent(ctx)
	if err == nil {
		w.metrics.NotificationsPending.Set(float64(pending))
	}

	batch, err := w.repo.ListUnsent(ctx, w.batchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to load unsent notifications")
		return
	}

	for _, n := range batch {
		if err := w.dispatch(ctx, n); err != nil {
			w.metrics.NotificationsFailed.Inc()
			w.logger.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("delivery failed, will retry")
			continue
		}

		sentAt := time.Now()
		if err := w.repo.MarkSent(ctx, n.ID, sentAt); err != nil {
			w.logger.Error().Err(err).Str("notification_id", n.ID.String()).Msg("failed to mark notification sent")
			continue
		}
		w.metrics.NotificationsSent.Inc()
	}
}

func (w *Notifier) dispatch(ctx context.Context, n *model.Notification) error {
	start := time.Now()
	defer func() {
		w.metrics.NotificationLatency.Observe(time.Since(start).Seconds())
	}()

	if n.UserID != nil {
		user, err := w.userRepo.Get(ctx, *n.UserID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// Target user was deleted. The row stays behind as an
			// undeliverable record; retire it so it stops cycling.
		case err != nil:
			return err
		default:
			if err := w.emailSvc.SendCustom(ctx, user.Email, n.Subject, n.Message); err != nil {
				return err
			}
		}
	}

	if w.broker != nil {
		event := messaging.Message{Type: "notification", Payload: n}
		if err := w.broker.Publish(ctx, messaging.ChannelNotifications, event); err != nil {
			w.logger.Warn().Err(err).Msg("failed to publish notification event")
		}
	}
	return nil
}
