package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(db *sqlx.DB) repository.ClinicRepository {
	return &clinicRepository{BaseRepository{db: db}}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	clinic.ID = uuid.New()
	clinic.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinics (id, name, address, contact_number, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		clinic.ID,
		clinic.Name,
		clinic.Address,
		clinic.ContactNumber,
		clinic.CreatedAt,
	)
	return mapError(err)
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	var clinic model.Clinic
	err := r.db.GetContext(ctx, &clinic, `SELECT * FROM clinics WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE clinics SET name = $1, address = $2, contact_number = $3 WHERE id = $4`,
		clinic.Name, clinic.Address, clinic.ContactNumber, clinic.ID)
	return mapError(err)
}

// Delete fails with a foreign key violation while personnel, cases,
// reports or guidance still reference the clinic. That is the intended
// behavior, not an error to paper over.
func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	return mapError(err)
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	var clinics []*model.Clinic
	err := r.db.SelectContext(ctx, &clinics, `SELECT * FROM clinics ORDER BY name`)
	if err != nil {
		return nil, mapError(err)
	}
	return clinics, nil
}
