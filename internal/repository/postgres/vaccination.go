package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type vaccinationRepository struct {
	BaseRepository
}

func NewVaccinationRepository(db *sqlx.DB) repository.VaccinationRepository {
	return &vaccinationRepository{BaseRepository{db: db}}
}

func (r *vaccinationRepository) Create(ctx context.Context, rec *model.VaccinationRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccination_records (
			id, case_id, personnel_id, vaccine_name, dose_number,
			date_administered, route, site, remarks, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.CaseID, rec.PersonnelID, rec.VaccineName,
		rec.DoseNumber, rec.DateAdministered, rec.Route, rec.Site,
		rec.Remarks, rec.CreatedAt,
	)
	return mapError(err)
}

func (r *vaccinationRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*model.VaccinationRecord, error) {
	var recs []*model.VaccinationRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT * FROM vaccination_records
		WHERE case_id = $1
		ORDER BY dose_number`, caseID)
	if err != nil {
		return nil, mapError(err)
	}
	return recs, nil
}
