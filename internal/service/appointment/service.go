package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/internal/service/audit"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

var ErrInvalidTransition = errors.New("invalid appointment status transition")

type Service struct {
	apptRepo    repository.AppointmentRepository
	caseRepo    repository.CaseRepository
	patientRepo repository.PatientRepository
	auditor     *audit.Service
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

func NewService(apptRepo repository.AppointmentRepository, caseRepo repository.CaseRepository,
	patientRepo repository.PatientRepository, auditor *audit.Service, m *metrics.Metrics,
	logger zerolog.Logger) *Service {
	return &Service{
		apptRepo:    apptRepo,
		caseRepo:    caseRepo,
		patientRepo: patientRepo,
		auditor:     auditor,
		metrics:     m,
		logger:      logger.With().Str("component", "appointment").Logger(),
	}
}

// Schedule books an encounter for an existing case and assigns the
// next same-day queue position at the clinic.
func (s *Service) Schedule(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		return nil, fmt.Errorf("invalid case id: %w", err)
	}
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}

	c, err := s.caseRepo.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	slot, err := time.Parse(time.RFC3339, req.AppointmentDatetime)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment datetime: %w", err)
	}

	pos, err := s.apptRepo.NextQueuePosition(ctx, clinicID, slot.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to assign queue position: %w", err)
	}

	appt := &model.Appointment{
		PatientID:           c.PatientID,
		ClinicID:            clinicID,
		CaseID:              caseID,
		AppointmentDatetime: slot.Format(time.RFC3339),
		Status:              model.AppointmentStatusScheduled,
		Type:                req.Type,
		QueuePosition:       &pos,
	}
	if req.PersonnelID != nil {
		pid, err := uuid.Parse(*req.PersonnelID)
		if err != nil {
			return nil, fmt.Errorf("invalid personnel id: %w", err)
		}
		appt.PersonnelID = &pid
	}

	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.AppointmentsBooked.Inc()
	s.logger.Info().
		Str("appointment_id", appt.ID.String()).
		Str("case_id", caseID.String()).
		Int("queue_position", pos).
		Msg("appointment scheduled")

	return appt, nil
}

// UpdateStatus moves an appointment through its lifecycle. Only
// scheduled appointments transition; terminal states stay put.
func (s *Service) UpdateStatus(ctx context.Context, personnelID, id uuid.UUID, status string) error {
	switch status {
	case model.AppointmentStatusCompleted, model.AppointmentStatusCancelled, model.AppointmentStatusMissed:
	default:
		return ErrInvalidTransition
	}

	appt, err := s.apptRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status != model.AppointmentStatusScheduled {
		return ErrInvalidTransition
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	oldStatus := appt.Status
	s.auditor.Log(ctx, personnelID, model.AuditActionUpdate, model.AuditEntityAppointment, id, &audit.LogOptions{
		CaseID:  &appt.CaseID,
		Changes: []audit.FieldChange{{Field: "status", OldValue: &oldStatus, NewValue: &status}},
	})
	return nil
}

// ListOwn returns the caller's appointments.
func (s *Service) ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Appointment, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.apptRepo.List(ctx, &model.AppointmentFilters{PatientID: patient.ID})
}

// CancelOwn cancels one of the caller's scheduled appointments. An
// appointment belonging to another patient answers as not found. No
// audit row is written since there is no acting staff member.
func (s *Service) CancelOwn(ctx context.Context, userID, id uuid.UUID) error {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	appt, err := s.apptRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if appt.PatientID != patient.ID {
		return repository.ErrNotFound
	}
	if appt.Status != model.AppointmentStatusScheduled {
		return ErrInvalidTransition
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.logger.Info().
		Str("appointment_id", id.String()).
		Str("patient_id", patient.ID.String()).
		Msg("appointment cancelled by patient")
	return nil
}

// Get returns one appointment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.apptRepo.Get(ctx, id)
}

// List returns appointments matching the filters.
func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.apptRepo.List(ctx, filters)
}
