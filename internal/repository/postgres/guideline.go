package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type guidelineRepository struct {
	BaseRepository
}

func NewGuidelineRepository(db *sqlx.DB) repository.GuidelineRepository {
	return &guidelineRepository{BaseRepository{db: db}}
}

func (r *guidelineRepository) Create(ctx context.Context, g *model.PreScreeningGuideline) error {
	now := time.Now()
	g.ID = uuid.New()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.Version == 0 {
		g.Version = 1
	}
	if g.IsActive == 0 {
		g.IsActive = 1
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pre_screening_guidelines (
			id, criteria_name, condition_expression, score_value,
			risk_level, version, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		g.ID, g.CriteriaName, g.ConditionExpression, g.ScoreValue,
		g.RiskLevel, g.Version, g.IsActive, g.CreatedAt, g.UpdatedAt,
	)
	return mapError(err)
}

func (r *guidelineRepository) Get(ctx context.Context, id uuid.UUID) (*model.PreScreeningGuideline, error) {
	var g model.PreScreeningGuideline
	err := r.db.GetContext(ctx, &g,
		`SELECT * FROM pre_screening_guidelines WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &g, nil
}

func (r *guidelineRepository) List(ctx context.Context) ([]*model.PreScreeningGuideline, error) {
	var gs []*model.PreScreeningGuideline
	err := r.db.SelectContext(ctx, &gs,
		`SELECT * FROM pre_screening_guidelines ORDER BY criteria_name, version DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	return gs, nil
}

func (r *guidelineRepository) ListActive(ctx context.Context) ([]*model.PreScreeningGuideline, error) {
	var gs []*model.PreScreeningGuideline
	err := r.db.SelectContext(ctx, &gs,
		`SELECT * FROM pre_screening_guidelines WHERE is_active = 1 ORDER BY criteria_name`)
	if err != nil {
		return nil, mapError(err)
	}
	return gs, nil
}

// Deactivate retires a catalog entry in place. Deletion is never
// offered: historical evaluations reference these rows.
func (r *guidelineRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pre_screening_guidelines
		SET is_active = 0, updated_at = $1
		WHERE id = $2`, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
