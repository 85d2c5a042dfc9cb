package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/messaging"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

// LogOptions carries the optional parts of an audit entry: the
// affected user, the related case, and field-level changes.
type LogOptions struct {
	UserID  *uuid.UUID
	CaseID  *uuid.UUID
	Changes []FieldChange
}

// FieldChange is one before/after pair. An INSERT records only the
// new value, a DELETE only the old one.
type FieldChange struct {
	Field    string
	OldValue *string
	NewValue *string
}

// Service writes the medical audit trail. One FieldChange produces
// one log row; an action with no field detail produces a single row
// with the field columns left null.
type Service struct {
	repo    repository.AuditRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewService(repo repository.AuditRepository, broker messaging.Broker, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		broker:  broker,
		metrics: m,
		logger:  logger.With().Str("component", "audit").Logger(),
	}
}

// Log records a medical action. Failures are logged, never returned:
// an audit write must not fail the clinical operation it describes.
func (s *Service) Log(ctx context.Context, personnelID uuid.UUID, action, entityType string, entityID uuid.UUID, opts *LogOptions) {
	if opts == nil {
		opts = &LogOptions{}
	}

	entries := buildEntries(personnelID, action, entityType, entityID, opts)
	for _, entry := range entries {
		if err := s.repo.Create(ctx, entry); err != nil {
			s.logger.Error().Err(err).
				Str("entity_type", entityType).
				Str("entity_id", entityID.String()).
				Str("action", action).
				Msg("failed to write audit entry")
			continue
		}
		s.metrics.AuditRowsWritten.WithLabelValues(action).Inc()
	}

	if s.broker != nil {
		event := map[string]interface{}{
			"personnel_id": personnelID.String(),
			"entity_type":  entityType,
			"entity_id":    entityID.String(),
			"action":       action,
			"fields":       len(entries),
		}
		if err := s.broker.Publish(ctx, messaging.ChannelAuditEvents, event); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish audit event")
		}
	}
}

// List returns audit entries matching the filters, newest first.
func (s *Service) List(ctx context.Context, filters *model.AuditFilters) ([]*model.MedicalAuditLog, error) {
	entries, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

func buildEntries(personnelID uuid.UUID, action, entityType string, entityID uuid.UUID, opts *LogOptions) []*model.MedicalAuditLog {
	base := func() *model.MedicalAuditLog {
		return &model.MedicalAuditLog{
			PersonnelID: personnelID,
			UserID:      opts.UserID,
			CaseID:      opts.CaseID,
			EntityType:  entityType,
			EntityID:    entityID,
			Action:      action,
		}
	}

	if len(opts.Changes) == 0 {
		return []*model.MedicalAuditLog{base()}
	}

	entries := make([]*model.MedicalAuditLog, 0, len(opts.Changes))
	for _, change := range opts.Changes {
		entry := base()
		field := change.Field
		entry.FieldName = &field
		entry.OldValue = change.OldValue
		entry.NewValue = change.NewValue
		entries = append(entries, entry)
	}
	return entries
}

// Diff compares two string-pointer field values and appends a change
// when they differ. Convenience for building LogOptions from an
// update request.
func Diff(changes []FieldChange, field string, oldVal, newVal *string) []FieldChange {
	switch {
	case oldVal == nil && newVal == nil:
		return changes
	case oldVal != nil && newVal != nil && *oldVal == *newVal:
		return changes
	}
	return append(changes, FieldChange{Field: field, OldValue: oldVal, NewValue: newVal})
}
