package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{BaseRepository{db: db}}
}

const insertUser = `
	INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// CreateWithPatient inserts the identity row and its patient extension
// atomically. The extension-per-role invariant lives here, not in the
// schema.
func (r *userRepository) CreateWithPatient(ctx context.Context, user *model.User, patient *model.Patient) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUserTx(ctx, tx, user); err != nil {
			return err
		}

		patient.ID = uuid.New()
		patient.UserID = user.ID
		patient.CreatedAt = time.Now()

		_, err := tx.ExecContext(ctx, `
			INSERT INTO patients (
				id, user_id, first_name, last_name, phone_number, address,
				date_of_birth, age, gender, allergies, pre_existing_conditions,
				current_medications, notification_settings, onboarding_completed, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			patient.ID,
			patient.UserID,
			patient.FirstName,
			patient.LastName,
			patient.PhoneNumber,
			patient.Address,
			patient.DateOfBirth,
			patient.Age,
			patient.Gender,
			patient.Allergies,
			patient.PreExistingConditions,
			patient.CurrentMedications,
			patient.NotificationSettings,
			patient.OnboardingCompleted,
			patient.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create patient extension: %w", mapError(err))
		}
		return nil
	})
}

func (r *userRepository) CreateWithPersonnel(ctx context.Context, user *model.User, personnel *model.ClinicPersonnel) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUserTx(ctx, tx, user); err != nil {
			return err
		}

		personnel.ID = uuid.New()
		personnel.UserID = user.ID
		personnel.CreatedAt = time.Now()

		_, err := tx.ExecContext(ctx, `
			INSERT INTO clinic_personnel (
				id, user_id, clinic_id, first_name, last_name,
				employee_id, license_number, title, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			personnel.ID,
			personnel.UserID,
			personnel.ClinicID,
			personnel.FirstName,
			personnel.LastName,
			personnel.EmployeeID,
			personnel.LicenseNumber,
			personnel.Title,
			personnel.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create personnel extension: %w", mapError(err))
		}
		return nil
	})
}

func (r *userRepository) CreateWithAdmin(ctx context.Context, user *model.User, admin *model.SystemAdmin) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertUserTx(ctx, tx, user); err != nil {
			return err
		}

		admin.ID = uuid.New()
		admin.UserID = user.ID
		admin.CreatedAt = time.Now()

		_, err := tx.ExecContext(ctx, `
			INSERT INTO system_admins (
				id, user_id, first_name, last_name, employee_id, permissions_json, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			admin.ID,
			admin.UserID,
			admin.FirstName,
			admin.LastName,
			admin.EmployeeID,
			admin.PermissionsJSON,
			admin.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create admin extension: %w", mapError(err))
		}
		return nil
	})
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = $1, updated_at = $2 WHERE id = $3`,
		email, time.Now(), id)
	return mapError(err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), id)
	return mapError(err)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return mapError(err)
}

func insertUserTx(ctx context.Context, tx *sqlx.Tx, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := tx.ExecContext(ctx, insertUser,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return nil
}
