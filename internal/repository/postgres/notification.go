package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{BaseRepository{db: db}}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id, recipient_role, case_id, subject, message,
			is_sent, sent_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.UserID, n.RecipientRole, n.CaseID, n.Subject,
		n.Message, n.IsSent, n.SentAt, n.CreatedAt,
	)
	return mapError(err)
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	var notifs []*model.Notification
	err := r.db.SelectContext(ctx, &notifs, `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return notifs, nil
}

func (r *notificationRepository) ListForRole(ctx context.Context, role string) ([]*model.Notification, error) {
	var notifs []*model.Notification
	err := r.db.SelectContext(ctx, &notifs, `
		SELECT * FROM notifications
		WHERE recipient_role = $1
		ORDER BY created_at DESC`, role)
	if err != nil {
		return nil, mapError(err)
	}
	return notifs, nil
}

func (r *notificationRepository) ListUnsent(ctx context.Context, limit int) ([]*model.Notification, error) {
	var notifs []*model.Notification
	err := r.db.SelectContext(ctx, &notifs, `
		SELECT * FROM notifications
		WHERE is_sent = 0
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, mapError(err)
	}
	return notifs, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_sent = 1, sent_at = $1
		WHERE id = $2`, sentAt, id)
	if err != nil {
		return mapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) CountUnsent(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM notifications WHERE is_sent = 0`)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
