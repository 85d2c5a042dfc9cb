package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type fakeRepo struct {
	repository.NotificationRepository
	created []*model.Notification
}

func (f *fakeRepo) Create(ctx context.Context, n *model.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateRequiresARecipient(t *testing.T) {
	svc := NewService(&fakeRepo{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		Subject: "Reminder",
		Message: "Visit the clinic.",
	})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestCreateRejectsUnknownRecipientRole(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		RecipientRole: strPtr("superuser"),
		Subject:       "Reminder",
		Message:       "Visit the clinic.",
	})
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Empty(t, repo.created)
}

func TestCreateAcceptsRoleBroadcast(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zerolog.Nop())

	n, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		RecipientRole: strPtr(model.RoleClinicPersonnel),
		Subject:       "Roster change",
		Message:       "Saturday shifts moved.",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleClinicPersonnel, *n.RecipientRole)
	assert.Len(t, repo.created, 1)
}

func TestCreateAcceptsUserTarget(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zerolog.Nop())

	userID := uuid.New().String()
	n, err := svc.Create(context.Background(), &model.CreateNotificationRequest{
		UserID:  &userID,
		Subject: "Dose due",
		Message: "Your next dose is tomorrow.",
	})
	require.NoError(t, err)
	require.NotNil(t, n.UserID)
	assert.Equal(t, userID, n.UserID.String())
}
