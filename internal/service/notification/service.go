package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

var (
	ErrNoRecipient = errors.New("notification needs a user or a recipient role")
	ErrUnknownRole = errors.New("recipient role is not a known role")
)

// Service creates notification rows. Delivery is the dispatcher
// worker's job; rows sit unsent until it picks them up.
type Service struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

func NewService(repo repository.NotificationRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "notification").Logger(),
	}
}

// Create queues a notification for a specific user, a role class, or
// both.
func (s *Service) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if req.UserID == nil && (req.RecipientRole == nil || *req.RecipientRole == "") {
		return nil, ErrNoRecipient
	}
	if req.RecipientRole != nil && *req.RecipientRole != "" && !model.ValidRole(*req.RecipientRole) {
		return nil, ErrUnknownRole
	}

	n := &model.Notification{
		RecipientRole: req.RecipientRole,
		Subject:       req.Subject,
		Message:       req.Message,
	}
	if req.UserID != nil {
		id, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		n.UserID = &id
	}
	if req.CaseID != nil {
		id, err := uuid.Parse(*req.CaseID)
		if err != nil {
			return nil, fmt.Errorf("invalid case id: %w", err)
		}
		n.CaseID = &id
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to queue notification: %w", err)
	}
	return n, nil
}

// NotifyUser queues a notification addressed to one user, optionally
// tied to a case.
func (s *Service) NotifyUser(ctx context.Context, userID uuid.UUID, caseID *uuid.UUID, subject, message string) error {
	n := &model.Notification{
		UserID:  &userID,
		CaseID:  caseID,
		Subject: subject,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to queue notification: %w", err)
	}
	return nil
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

// ListForRole returns role-broadcast notifications, newest first.
func (s *Service) ListForRole(ctx context.Context, role string) ([]*model.Notification, error) {
	return s.repo.ListForRole(ctx, role)
}
