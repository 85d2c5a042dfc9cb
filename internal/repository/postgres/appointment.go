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

const insertAppointment = `
	INSERT INTO appointments (
		id, patient_id, clinic_id, case_id, personnel_id,
		appointment_datetime, status, type, queue_position,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository{db: db}}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	now := time.Now()
	appt.ID = uuid.New()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.Status == "" {
		appt.Status = model.AppointmentStatusScheduled
	}

	_, err := r.db.ExecContext(ctx, insertAppointment,
		appt.ID, appt.PatientID, appt.ClinicID, appt.CaseID,
		appt.PersonnelID, appt.AppointmentDatetime, appt.Status,
		appt.Type, appt.QueuePosition, appt.CreatedAt, appt.UpdatedAt,
	)
	return mapError(err)
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `SELECT * FROM appointments WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &appt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
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
		if filters.CaseID != uuid.Nil {
			query += fmt.Sprintf(" AND case_id = $%d", i)
			args = append(args, filters.CaseID)
			i++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", i)
			args = append(args, filters.Status)
			i++
		}
		if filters.Date != "" {
			query += fmt.Sprintf(" AND appointment_datetime LIKE $%d", i)
			args = append(args, filters.Date+"%")
			i++
		}
	}
	query += " ORDER BY appointment_datetime DESC"

	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, mapError(err)
	}
	return appts, nil
}

// NextQueuePosition returns one past the highest queue position taken
// at the clinic on the given date. Datetimes are ISO-8601 text, so a
// date prefix match selects the day.
func (r *appointmentRepository) NextQueuePosition(ctx context.Context, clinicID uuid.UUID, date string) (int, error) {
	var max int
	err := r.db.GetContext(ctx, &max, `
		SELECT COALESCE(MAX(queue_position), 0)
		FROM appointments
		WHERE clinic_id = $1 AND appointment_datetime LIKE $2`,
		clinicID, date+"%")
	if err != nil {
		return 0, mapError(err)
	}
	return max + 1, nil
}
