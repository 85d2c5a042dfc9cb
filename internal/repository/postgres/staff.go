package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type personnelRepository struct {
	BaseRepository
}

func NewPersonnelRepository(db *sqlx.DB) repository.PersonnelRepository {
	return &personnelRepository{BaseRepository{db: db}}
}

func (r *personnelRepository) Get(ctx context.Context, id uuid.UUID) (*model.ClinicPersonnel, error) {
	var p model.ClinicPersonnel
	err := r.db.GetContext(ctx, &p, `SELECT * FROM clinic_personnel WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *personnelRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.ClinicPersonnel, error) {
	var p model.ClinicPersonnel
	err := r.db.GetContext(ctx, &p, `SELECT * FROM clinic_personnel WHERE user_id = $1`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *personnelRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.StaffProfile, error) {
	var profile model.StaffProfile
	err := r.db.GetContext(ctx, &profile, `
		SELECT cp.*, u.username, u.email, c.name AS clinic_name
		FROM clinic_personnel cp
		JOIN users u ON u.id = cp.user_id
		JOIN clinics c ON c.id = cp.clinic_id
		WHERE cp.user_id = $1`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *personnelRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPersonnel, error) {
	var personnel []*model.ClinicPersonnel
	err := r.db.SelectContext(ctx, &personnel,
		`SELECT * FROM clinic_personnel WHERE clinic_id = $1 ORDER BY created_at`, clinicID)
	if err != nil {
		return nil, mapError(err)
	}
	return personnel, nil
}

// Delete is blocked by vaccination records and audit rows that
// reference the clinician; appointments just lose their assignment.
func (r *personnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clinic_personnel WHERE id = $1`, id)
	return mapError(err)
}

type adminRepository struct {
	BaseRepository
}

func NewAdminRepository(db *sqlx.DB) repository.AdminRepository {
	return &adminRepository{BaseRepository{db: db}}
}

func (r *adminRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.SystemAdmin, error) {
	var a model.SystemAdmin
	err := r.db.GetContext(ctx, &a, `SELECT * FROM system_admins WHERE user_id = $1`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}
