package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

type fakeNotificationRepo struct {
	unsent  []*model.Notification
	sentIDs []uuid.UUID
	listErr error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return nil
}

func (f *fakeNotificationRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListForRole(ctx context.Context, role string) ([]*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListUnsent(ctx context.Context, limit int) ([]*model.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > len(f.unsent) {
		limit = len(f.unsent)
	}
	return f.unsent[:limit], nil
}

func (f *fakeNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	f.sentIDs = append(f.sentIDs, id)
	return nil
}

func (f *fakeNotificationRepo) CountUnsent(ctx context.Context) (int, error) {
	return len(f.unsent), nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users  map[uuid.UUID]*model.User
	getErr error
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

type fakeEmail struct {
	sentTo []string
	err    error
}

func (f *fakeEmail) SendPasswordReset(ctx context.Context, to, token string) error { return nil }
func (f *fakeEmail) SendWelcome(ctx context.Context, to, name string) error        { return nil }
func (f *fakeEmail) SendCaseReference(ctx context.Context, to, referenceCode string) error {
	return nil
}

func (f *fakeEmail) SendCustom(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}

var testMetrics = metrics.New("rabiesresq_worker_test")

func pending(userID *uuid.UUID) *model.Notification {
	return &model.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Subject: "Appointment reminder",
		Message: "Your next dose is due tomorrow.",
	}
}

func TestDispatchBatchMarksDeliveredRows(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{unsent: []*model.Notification{
		pending(&userID),
		pending(&userID),
	}}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		userID: {ID: userID, Email: "patient@example.com"},
	}}
	mailer := &fakeEmail{}

	w := NewNotifier(repo, users, mailer, nil, testMetrics, zerolog.Nop(), 10, time.Second)
	w.dispatchBatch(context.Background())

	assert.Len(t, repo.sentIDs, 2)
	assert.Equal(t, []string{"patient@example.com", "patient@example.com"}, mailer.sentTo)
}

func TestDispatchBatchRetriesFailedDeliveries(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{unsent: []*model.Notification{pending(&userID)}}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		userID: {ID: userID, Email: "patient@example.com"},
	}}
	mailer := &fakeEmail{err: errors.New("smtp unreachable")}

	w := NewNotifier(repo, users, mailer, nil, testMetrics, zerolog.Nop(), 10, time.Second)
	w.dispatchBatch(context.Background())

	// The row stays unsent so the next pass picks it up again.
	assert.Empty(t, repo.sentIDs)
}

func TestDispatchBatchSkipsDeletedRecipients(t *testing.T) {
	gone := uuid.New()
	repo := &fakeNotificationRepo{unsent: []*model.Notification{pending(&gone)}}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	mailer := &fakeEmail{}

	w := NewNotifier(repo, users, mailer, nil, testMetrics, zerolog.Nop(), 10, time.Second)
	w.dispatchBatch(context.Background())

	// No address to deliver to, but the row is retired anyway.
	assert.Len(t, repo.sentIDs, 1)
	assert.Empty(t, mailer.sentTo)
}

func TestDispatchBatchRetriesOnUserLookupFailure(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{unsent: []*model.Notification{pending(&userID)}}
	users := &fakeUserRepo{getErr: errors.New("connection refused")}
	mailer := &fakeEmail{}

	w := NewNotifier(repo, users, mailer, nil, testMetrics, zerolog.Nop(), 10, time.Second)
	w.dispatchBatch(context.Background())

	// Only a confirmed-deleted recipient retires a row; a transient
	// lookup failure must leave it unsent for the next pass.
	assert.Empty(t, repo.sentIDs)
	assert.Empty(t, mailer.sentTo)
}

func TestDispatchBatchHonorsBatchSize(t *testing.T) {
	userID := uuid.New()
	repo := &fakeNotificationRepo{unsent: []*model.Notification{
		pending(&userID), pending(&userID), pending(&userID),
	}}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		userID: {ID: userID, Email: "patient@example.com"},
	}}
	mailer := &fakeEmail{}

	w := NewNotifier(repo, users, mailer, nil, testMetrics, zerolog.Nop(), 2, time.Second)
	w.dispatchBatch(context.Background())

	assert.Len(t, repo.sentIDs, 2)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}

	w := NewNotifier(repo, users, &fakeEmail{}, nil, testMetrics, zerolog.Nop(), 10, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}
}
