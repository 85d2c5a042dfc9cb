package prescreening

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/service/audit"
)

// CreateGuideline adds a scoring catalog entry.
func (s *Service) CreateGuideline(ctx context.Context, personnelID uuid.UUID, req *model.CreateGuidelineRequest) (*model.PreScreeningGuideline, error) {
	g := &model.PreScreeningGuideline{
		CriteriaName:        req.CriteriaName,
		ConditionExpression: req.ConditionExpression,
		ScoreValue:          req.ScoreValue,
		RiskLevel:           req.RiskLevel,
	}
	if err := s.guidelineRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create guideline: %w", err)
	}

	score := strconv.Itoa(g.ScoreValue)
	s.auditor.Log(ctx, personnelID, model.AuditActionInsert, model.AuditEntityGuideline, g.ID, &audit.LogOptions{
		Changes: []audit.FieldChange{
			{Field: "criteria_name", NewValue: &g.CriteriaName},
			{Field: "score_value", NewValue: &score},
			{Field: "risk_level", NewValue: &g.RiskLevel},
		},
	})
	return g, nil
}

// ListGuidelines returns the full catalog, inactive entries included.
func (s *Service) ListGuidelines(ctx context.Context) ([]*model.PreScreeningGuideline, error) {
	return s.guidelineRepo.List(ctx)
}

// DeactivateGuideline retires a catalog entry. Past evaluations keep
// pointing at it, which is why the catalog never deletes.
func (s *Service) DeactivateGuideline(ctx context.Context, personnelID, id uuid.UUID) error {
	g, err := s.guidelineRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guidelineRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate guideline: %w", err)
	}

	oldActive := strconv.Itoa(g.IsActive)
	newActive := "0"
	s.auditor.Log(ctx, personnelID, model.AuditActionUpdate, model.AuditEntityGuideline, id, &audit.LogOptions{
		Changes: []audit.FieldChange{{Field: "is_active", OldValue: &oldActive, NewValue: &newActive}},
	})
	return nil
}
