package prescreening

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/email"
	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/internal/service/audit"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

var ErrNoPatientProfile = errors.New("no patient profile for user")

// referenceCodeTTL bounds how long a walk-in code stays usable.
const referenceCodeTTL = 30 * 24 * time.Hour

// IntakeResult is what the patient walks away with after submitting
// the exposure form.
type IntakeResult struct {
	Case          *model.Case        `json:"case"`
	ReferenceCode string             `json:"reference_code"`
	Appointment   *model.Appointment `json:"appointment,omitempty"`
}

type Service struct {
	caseRepo      repository.CaseRepository
	patientRepo   repository.PatientRepository
	guidelineRepo repository.GuidelineRepository
	apptRepo      repository.AppointmentRepository
	emailSvc      email.Service
	auditor       *audit.Service
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

func NewService(caseRepo repository.CaseRepository, patientRepo repository.PatientRepository,
	guidelineRepo repository.GuidelineRepository, apptRepo repository.AppointmentRepository,
	emailSvc email.Service, auditor *audit.Service, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		caseRepo:      caseRepo,
		patientRepo:   patientRepo,
		guidelineRepo: guidelineRepo,
		apptRepo:      apptRepo,
		emailSvc:      emailSvc,
		auditor:       auditor,
		metrics:       m,
		logger:        logger.With().Str("component", "prescreening").Logger(),
	}
}

// SubmitIntake processes an exposure report: it classifies the risk,
// applies the active guideline catalog, and writes the case, its
// detail row, the evaluations, the reference code and the optional
// first appointment in a single transaction.
func (s *Service) SubmitIntake(ctx context.Context, userID, clinicID uuid.UUID, req *model.PreScreeningSubmission) (*IntakeResult, error) {
	profile, err := s.patientRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPatientProfile
		}
		return nil, fmt.Errorf("failed to load patient profile: %w", err)
	}

	bleeding := BleedingType(req.SpontaneousBleeding, req.InducedBleeding)
	wound := ""
	if req.WoundDescription != nil {
		wound = *req.WoundDescription
	}

	riskLevel := Classify(ClassifyInput{
		TypeOfExposure:   req.TypeOfExposure,
		AffectedArea:     req.AffectedArea,
		WoundDescription: wound,
		BleedingType:     bleeding,
		AnimalStatus:     req.AnimalStatus,
	})

	typeOfExposure := req.TypeOfExposure
	animalDetail := composite(req.AnimalType, "Others", req.OtherAnimal)
	place := composite(req.PlaceOfExposure, "Other", req.PlaceOfExposureOther)
	area := composite(req.AffectedArea, "Other", req.AffectedAreaOther)
	treatment := composite(req.LocalTreatment, "Others", req.OtherTreatment)
	tetanus := req.TetanusImmunization
	animalStatus := req.AnimalStatus

	c := &model.Case{
		PatientID:                profile.ID,
		ClinicID:                 clinicID,
		ExposureDate:             req.ExposureDate,
		ExposureTime:             req.ExposureTime,
		PlaceOfExposure:          &place,
		AffectedArea:             &area,
		TypeOfExposure:           &typeOfExposure,
		AnimalDetail:             &animalDetail,
		AnimalCondition:          &animalStatus,
		RiskLevel:                riskLevel,
		TetanusProphylaxisStatus: &tetanus,
		Status:                   model.CaseStatusOpen,
	}

	hrtig := 0
	var hrtigDate *string
	if req.HRTIGImmunization == "Yes" {
		hrtig = 1
		hrtigDate = req.HRTIGDate
	}
	detail := &model.PreScreeningDetail{
		WoundDescription:        req.WoundDescription,
		BleedingType:            &bleeding,
		LocalTreatment:          &treatment,
		PatientPrevImmunization: req.PatientPrevImmunization,
		PrevVaccineDate:         req.PrevVaccineDate,
		TetanusDate:             req.TetanusDate,
		HRTIGImmunization:       hrtig,
		HRTIGDate:               hrtigDate,
	}

	evals, score, err := s.evaluateGuidelines(ctx, riskLevel)
	if err != nil {
		return nil, err
	}
	if len(evals) > 0 {
		detail.ComputedScore = &score
	}

	code, err := newReferenceCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference code: %w", err)
	}
	expires := time.Now().Add(referenceCodeTTL)
	refCode := &model.ReferenceCode{
		Code:      code,
		ExpiresAt: &expires,
	}

	var appt *model.Appointment
	if req.WithAppointment {
		slot := time.Now().AddDate(0, 0, 1)
		slot = time.Date(slot.Year(), slot.Month(), slot.Day(), 9, 0, 0, 0, slot.Location())
		slotStr := slot.Format(time.RFC3339)

		pos, err := s.apptRepo.NextQueuePosition(ctx, clinicID, slot.Format("2006-01-02"))
		if err != nil {
			return nil, fmt.Errorf("failed to assign queue position: %w", err)
		}
		apptType := model.AppointmentTypePreScreening
		appt = &model.Appointment{
			PatientID:           profile.ID,
			ClinicID:            clinicID,
			AppointmentDatetime: slotStr,
			Status:              model.AppointmentStatusScheduled,
			Type:                &apptType,
			QueuePosition:       &pos,
		}
	}

	if err := s.caseRepo.CreateWithDetail(ctx, c, detail, evals, refCode, appt); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	s.metrics.CasesCreated.Inc()
	s.metrics.CasesByRiskLevel.WithLabelValues(riskLevel).Inc()
	if appt != nil {
		s.metrics.AppointmentsBooked.Inc()
	}

	if err := s.emailSvc.SendCaseReference(ctx, profile.Email, code); err != nil {
		s.logger.Warn().Err(err).Str("case_id", c.ID.String()).Msg("failed to email reference code")
	}

	s.logger.Info().
		Str("case_id", c.ID.String()).
		Str("risk_level", riskLevel).
		Bool("with_appointment", appt != nil).
		Msg("exposure case created")

	return &IntakeResult{Case: c, ReferenceCode: code, Appointment: appt}, nil
}

// GetCase returns the case with its detail, evaluations and code.
func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*CaseFile, error) {
	c, err := s.caseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleCaseFile(ctx, c)
}

// LookupByReferenceCode resolves a walk-in code, rejecting expired ones.
func (s *Service) LookupByReferenceCode(ctx context.Context, code string) (*CaseFile, error) {
	c, err := s.caseRepo.GetByReferenceCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	file, err := s.assembleCaseFile(ctx, c)
	if err != nil {
		return nil, err
	}
	if file.ReferenceCode != nil && file.ReferenceCode.ExpiresAt != nil &&
		time.Now().After(*file.ReferenceCode.ExpiresAt) {
		return nil, repository.ErrNotFound
	}
	return file, nil
}

// ListCases returns cases matching the filters.
func (s *Service) ListCases(ctx context.Context, filters *model.CaseFilters) ([]*model.Case, error) {
	return s.caseRepo.List(ctx, filters)
}

// ListCasesForUser returns the calling patient's own cases.
func (s *Service) ListCasesForUser(ctx context.Context, userID uuid.UUID) ([]*model.Case, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPatientProfile
		}
		return nil, err
	}
	return s.caseRepo.List(ctx, &model.CaseFilters{PatientID: patient.ID})
}

// CloseCase marks a case closed and audits the transition.
func (s *Service) CloseCase(ctx context.Context, personnelID, caseID uuid.UUID) error {
	c, err := s.caseRepo.Get(ctx, caseID)
	if err != nil {
		return err
	}
	if err := s.caseRepo.UpdateStatus(ctx, caseID, model.CaseStatusClosed); err != nil {
		return fmt.Errorf("failed to close case: %w", err)
	}

	oldStatus := c.Status
	newStatus := model.CaseStatusClosed
	s.auditor.Log(ctx, personnelID, model.AuditActionUpdate, model.AuditEntityCase, caseID, &audit.LogOptions{
		CaseID:  &caseID,
		Changes: []audit.FieldChange{{Field: "status", OldValue: &oldStatus, NewValue: &newStatus}},
	})
	return nil
}

// CaseFile is a case with its one-to-one and one-to-many attachments.
type CaseFile struct {
	Case          *model.Case                     `json:"case"`
	Detail        *model.PreScreeningDetail       `json:"detail,omitempty"`
	Evaluations   []*model.PreScreeningEvaluation `json:"evaluations,omitempty"`
	ReferenceCode *model.ReferenceCode            `json:"reference_code,omitempty"`
}

func (s *Service) assembleCaseFile(ctx context.Context, c *model.Case) (*CaseFile, error) {
	file := &CaseFile{Case: c}

	detail, err := s.caseRepo.GetDetail(ctx, c.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load detail: %w", err)
	}
	file.Detail = detail

	evals, err := s.caseRepo.ListEvaluations(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}
	file.Evaluations = evals

	refCode, err := s.caseRepo.GetReferenceCode(ctx, c.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load reference code: %w", err)
	}
	file.ReferenceCode = refCode

	return file, nil
}

// evaluateGuidelines applies every active catalog entry whose risk
// level matches the classification. The applied score is frozen into
// the evaluation row so later guideline edits cannot rewrite history.
func (s *Service) evaluateGuidelines(ctx context.Context, riskLevel string) ([]*model.PreScreeningEvaluation, int, error) {
	guidelines, err := s.guidelineRepo.ListActive(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load guidelines: %w", err)
	}

	var evals []*model.PreScreeningEvaluation
	total := 0
	for _, g := range guidelines {
		if g.RiskLevel != riskLevel {
			continue
		}
		evals = append(evals, &model.PreScreeningEvaluation{
			GuidelineID:  g.ID,
			AppliedScore: g.ScoreValue,
		})
		total += g.ScoreValue
	}
	return evals, total, nil
}

// composite folds an "other, please specify" answer into the stored
// value the way the intake form labels it.
func composite(value, otherLabel string, otherText *string) string {
	if value == otherLabel && otherText != nil && *otherText != "" {
		return fmt.Sprintf("%s: %s", value, *otherText)
	}
	return value
}

func newReferenceCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "RRQ-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
