package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type reportRepository struct {
	BaseRepository
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{BaseRepository{db: db}}
}

func (r *reportRepository) Create(ctx context.Context, rep *model.Report) error {
	rep.ID = uuid.New()
	rep.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (
			id, clinic_id, generated_by, report_type, period_start,
			period_end, content, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rep.ID, rep.ClinicID, rep.GeneratedBy, rep.ReportType,
		rep.PeriodStart, rep.PeriodEnd, rep.Content, rep.CreatedAt,
	)
	return mapError(err)
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var rep model.Report
	err := r.db.GetContext(ctx, &rep, `SELECT * FROM reports WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &rep, nil
}

func (r *reportRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Report, error) {
	var reps []*model.Report
	err := r.db.SelectContext(ctx, &reps, `
		SELECT * FROM reports
		WHERE clinic_id = $1
		ORDER BY created_at DESC`, clinicID)
	if err != nil {
		return nil, mapError(err)
	}
	return reps, nil
}

type guidanceRepository struct {
	BaseRepository
}

func NewGuidanceRepository(db *sqlx.DB) repository.GuidanceRepository {
	return &guidanceRepository{BaseRepository{db: db}}
}

func (r *guidanceRepository) Create(ctx context.Context, g *model.PatientGuidance) error {
	g.ID = uuid.New()
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patient_guidance (
			id, clinic_id, author_id, title, content, category,
			is_published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		g.ID, g.ClinicID, g.AuthorID, g.Title, g.Content,
		g.Category, g.IsPublished, g.CreatedAt, g.UpdatedAt,
	)
	return mapError(err)
}

func (r *guidanceRepository) Get(ctx context.Context, id uuid.UUID) (*model.PatientGuidance, error) {
	var g model.PatientGuidance
	err := r.db.GetContext(ctx, &g, `SELECT * FROM patient_guidance WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &g, nil
}

func (r *guidanceRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID, publishedOnly bool) ([]*model.PatientGuidance, error) {
	query := `SELECT * FROM patient_guidance WHERE clinic_id = $1`
	if publishedOnly {
		query += ` AND is_published = 1`
	}
	query += ` ORDER BY created_at DESC`

	var items []*model.PatientGuidance
	if err := r.db.SelectContext(ctx, &items, query, clinicID); err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func (r *guidanceRepository) Publish(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE patient_guidance SET is_published = 1, updated_at = $1
		WHERE id = $2`, time.Now(), id)
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
