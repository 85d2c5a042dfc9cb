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

type caseRepository struct {
	BaseRepository
}

func NewCaseRepository(db *sqlx.DB) repository.CaseRepository {
	return &caseRepository{BaseRepository{db: db}}
}

// CreateWithDetail commits the whole intake in one transaction: the
// case row, its single pre-screening detail, any guideline evaluations,
// the case reference code and an optional first appointment.
func (r *caseRepository) CreateWithDetail(ctx context.Context, c *model.Case,
	detail *model.PreScreeningDetail, evals []*model.PreScreeningEvaluation,
	refCode *model.ReferenceCode, appt *model.Appointment) error {

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		c.ID = uuid.New()
		c.CreatedAt = now
		c.UpdatedAt = now
		if c.Status == "" {
			c.Status = model.CaseStatusOpen
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO cases (
				id, patient_id, clinic_id, exposure_date, exposure_time,
				place_of_exposure, affected_area, type_of_exposure,
				animal_detail, animal_condition, risk_level,
				tetanus_prophylaxis_status, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			c.ID, c.PatientID, c.ClinicID, c.ExposureDate, c.ExposureTime,
			c.PlaceOfExposure, c.AffectedArea, c.TypeOfExposure,
			c.AnimalDetail, c.AnimalCondition, c.RiskLevel,
			c.TetanusProphylaxisStatus, c.Status, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create case: %w", mapError(err))
		}

		detail.CaseID = c.ID
		detail.CreatedAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pre_screening_details (
				case_id, wound_description, bleeding_type, local_treatment,
				patient_prev_immunization, prev_vaccine_date, tetanus_date,
				hrtig_immunization, hrtig_date, computed_score, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			detail.CaseID, detail.WoundDescription, detail.BleedingType,
			detail.LocalTreatment, detail.PatientPrevImmunization,
			detail.PrevVaccineDate, detail.TetanusDate,
			detail.HRTIGImmunization, detail.HRTIGDate,
			detail.ComputedScore, detail.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create pre-screening detail: %w", mapError(err))
		}

		for _, ev := range evals {
			ev.ID = uuid.New()
			ev.CaseID = c.ID
			ev.EvaluatedAt = now
			_, err = tx.ExecContext(ctx, `
				INSERT INTO pre_screening_evaluations (
					id, case_id, guideline_id, applied_score, evaluated_at
				) VALUES ($1, $2, $3, $4, $5)`,
				ev.ID, ev.CaseID, ev.GuidelineID, ev.AppliedScore, ev.EvaluatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to create evaluation: %w", mapError(err))
			}
		}

		if refCode != nil {
			refCode.ID = uuid.New()
			refCode.CaseID = c.ID
			refCode.CreatedAt = now
			_, err = tx.ExecContext(ctx, `
				INSERT INTO reference_codes (id, case_id, code, expires_at, created_at)
				VALUES ($1, $2, $3, $4, $5)`,
				refCode.ID, refCode.CaseID, refCode.Code, refCode.ExpiresAt, refCode.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to create reference code: %w", mapError(err))
			}
		}

		if appt != nil {
			appt.ID = uuid.New()
			appt.CaseID = c.ID
			appt.PatientID = c.PatientID
			appt.ClinicID = c.ClinicID
			appt.CreatedAt = now
			appt.UpdatedAt = now
			if appt.Status == "" {
				appt.Status = model.AppointmentStatusScheduled
			}
			_, err = tx.ExecContext(ctx, insertAppointment,
				appt.ID, appt.PatientID, appt.ClinicID, appt.CaseID,
				appt.PersonnelID, appt.AppointmentDatetime, appt.Status,
				appt.Type, appt.QueuePosition, appt.CreatedAt, appt.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to create appointment: %w", mapError(err))
			}
		}

		return nil
	})
}

func (r *caseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Case, error) {
	var c model.Case
	err := r.db.GetContext(ctx, &c, `SELECT * FROM cases WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *caseRepository) GetByReferenceCode(ctx context.Context, code string) (*model.Case, error) {
	var c model.Case
	err := r.db.GetContext(ctx, &c, `
		SELECT c.* FROM cases c
		JOIN reference_codes rc ON rc.case_id = c.id
		WHERE rc.code = $1`, code)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *caseRepository) List(ctx context.Context, filters *model.CaseFilters) ([]*model.Case, error) {
	query := `SELECT * FROM cases WHERE 1=1`
	args := []interface{}{}
	i := 1

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", i)
			args = append(args, filters.PatientID)
			i++
		}
		if filters.ClinicID != uuid.Nil {
			query += fmt.Sprintf(" AND clinic_id = $%d", i)
			args = append(args, filters.ClinicID)
			i++
		}
		if filters.RiskLevel != "" {
			query += fmt.Sprintf(" AND risk_level = $%d", i)
			args = append(args, filters.RiskLevel)
			i++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", i)
			args = append(args, filters.Status)
			i++
		}
	}
	query += " ORDER BY created_at DESC"

	var cases []*model.Case
	if err := r.db.SelectContext(ctx, &cases, query, args...); err != nil {
		return nil, mapError(err)
	}
	return cases, nil
}

func (r *caseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cases SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id)
	return mapError(err)
}

func (r *caseRepository) GetDetail(ctx context.Context, caseID uuid.UUID) (*model.PreScreeningDetail, error) {
	var d model.PreScreeningDetail
	err := r.db.GetContext(ctx, &d,
		`SELECT * FROM pre_screening_details WHERE case_id = $1`, caseID)
	if err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *caseRepository) ListEvaluations(ctx context.Context, caseID uuid.UUID) ([]*model.PreScreeningEvaluation, error) {
	var evals []*model.PreScreeningEvaluation
	err := r.db.SelectContext(ctx, &evals,
		`SELECT * FROM pre_screening_evaluations WHERE case_id = $1 ORDER BY evaluated_at`, caseID)
	if err != nil {
		return nil, mapError(err)
	}
	return evals, nil
}

func (r *caseRepository) GetReferenceCode(ctx context.Context, caseID uuid.UUID) (*model.ReferenceCode, error) {
	var rc model.ReferenceCode
	err := r.db.GetContext(ctx, &rc,
		`SELECT * FROM reference_codes WHERE case_id = $1`, caseID)
	if err != nil {
		return nil, mapError(err)
	}
	return &rc, nil
}

func (r *caseRepository) AddNote(ctx context.Context, note *model.CaseNote) error {
	note.ID = uuid.New()
	note.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO case_notes (id, case_id, author_user_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.CaseID, note.AuthorUserID, note.Note, note.CreatedAt)
	return mapError(err)
}

func (r *caseRepository) ListNotes(ctx context.Context, caseID uuid.UUID) ([]*model.CaseNote, error) {
	var notes []*model.CaseNote
	err := r.db.SelectContext(ctx, &notes,
		`SELECT * FROM case_notes WHERE case_id = $1 ORDER BY created_at DESC`, caseID)
	if err != nil {
		return nil, mapError(err)
	}
	return notes, nil
}
