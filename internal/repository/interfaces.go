package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles identity rows. The CreateWith* variants
	// insert the user and its role extension in one transaction, the
	// only way an extension row ever comes to exist.
	UserRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		CreateWithPatient(ctx context.Context, user *model.User, patient *model.Patient) error
		CreateWithPersonnel(ctx context.Context, user *model.User, personnel *model.ClinicPersonnel) error
		CreateWithAdmin(ctx context.Context, user *model.User, admin *model.SystemAdmin) error
		UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PatientRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
		GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
		Update(ctx context.Context, patient *model.Patient) error
		CompleteOnboarding(ctx context.Context, userID uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Clinic, error)
	}

	PersonnelRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.ClinicPersonnel, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.ClinicPersonnel, error)
		GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.StaffProfile, error)
		ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPersonnel, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	AdminRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.SystemAdmin, error)
	}

	// CaseRepository owns the clinical aggregate. CreateWithDetail is
	// the atomic intake write: case, its single detail row, applied
	// guideline evaluations, the reference code and an optional
	// appointment all commit or roll back together.
	CaseRepository interface {
		CreateWithDetail(ctx context.Context, c *model.Case, detail *model.PreScreeningDetail,
			evals []*model.PreScreeningEvaluation, refCode *model.ReferenceCode,
			appt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Case, error)
		GetByReferenceCode(ctx context.Context, code string) (*model.Case, error)
		List(ctx context.Context, filters *model.CaseFilters) ([]*model.Case, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
		Delete(ctx context.Context, id uuid.UUID) error

		GetDetail(ctx context.Context, caseID uuid.UUID) (*model.PreScreeningDetail, error)
		ListEvaluations(ctx context.Context, caseID uuid.UUID) ([]*model.PreScreeningEvaluation, error)
		GetReferenceCode(ctx context.Context, caseID uuid.UUID) (*model.ReferenceCode, error)

		AddNote(ctx context.Context, note *model.CaseNote) error
		ListNotes(ctx context.Context, caseID uuid.UUID) ([]*model.CaseNote, error)
	}

	GuidelineRepository interface {
		Create(ctx context.Context, g *model.PreScreeningGuideline) error
		Get(ctx context.Context, id uuid.UUID) (*model.PreScreeningGuideline, error)
		List(ctx context.Context) ([]*model.PreScreeningGuideline, error)
		ListActive(ctx context.Context) ([]*model.PreScreeningGuideline, error)
		Deactivate(ctx context.Context, id uuid.UUID) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		NextQueuePosition(ctx context.Context, clinicID uuid.UUID, date string) (int, error)
	}

	VaccinationRepository interface {
		Create(ctx context.Context, rec *model.VaccinationRecord) error
		ListByCase(ctx context.Context, caseID uuid.UUID) ([]*model.VaccinationRecord, error)
	}

	// AuditRepository is append-only by construction: there is no
	// update or delete method to call.
	AuditRepository interface {
		Create(ctx context.Context, entry *model.MedicalAuditLog) error
		List(ctx context.Context, filters *model.AuditFilters) ([]*model.MedicalAuditLog, error)
		CountsByAction(ctx context.Context) (map[string]int, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, n *model.Notification) error
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
		ListForRole(ctx context.Context, role string) ([]*model.Notification, error)
		ListUnsent(ctx context.Context, limit int) ([]*model.Notification, error)
		MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
		CountUnsent(ctx context.Context) (int, error)
	}

	ReportRepository interface {
		Create(ctx context.Context, r *model.Report) error
		Get(ctx context.Context, id uuid.UUID) (*model.Report, error)
		ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Report, error)
	}

	GuidanceRepository interface {
		Create(ctx context.Context, g *model.PatientGuidance) error
		Get(ctx context.Context, id uuid.UUID) (*model.PatientGuidance, error)
		ListByClinic(ctx context.Context, clinicID uuid.UUID, publishedOnly bool) ([]*model.PatientGuidance, error)
		Publish(ctx context.Context, id uuid.UUID) error
	}
)
