package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{BaseRepository{db: db}}
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var p model.Patient
	err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	var p model.Patient
	err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE user_id = $1`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *patientRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	var profile model.PatientProfile
	err := r.db.GetContext(ctx, &profile, `
		SELECT p.*, u.username, u.email
		FROM patients p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *patientRepository) Update(ctx context.Context, p *model.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE patients SET
			first_name = $1,
			last_name = $2,
			phone_number = $3,
			address = $4,
			date_of_birth = $5,
			age = $6,
			gender = $7,
			allergies = $8,
			pre_existing_conditions = $9,
			current_medications = $10,
			notification_settings = $11
		WHERE id = $12`,
		p.FirstName,
		p.LastName,
		p.PhoneNumber,
		p.Address,
		p.DateOfBirth,
		p.Age,
		p.Gender,
		p.Allergies,
		p.PreExistingConditions,
		p.CurrentMedications,
		p.NotificationSettings,
		p.ID,
	)
	return mapError(err)
}

func (r *patientRepository) CompleteOnboarding(ctx context.Context, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE patients SET onboarding_completed = 1 WHERE user_id = $1`, userID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, `SELECT * FROM patients ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	return patients, nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return mapError(err)
}
