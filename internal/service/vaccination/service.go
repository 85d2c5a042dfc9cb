package vaccination

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/internal/service/audit"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

type Service struct {
	vaccRepo repository.VaccinationRepository
	caseRepo repository.CaseRepository
	auditor  *audit.Service
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewService(vaccRepo repository.VaccinationRepository, caseRepo repository.CaseRepository,
	auditor *audit.Service, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		vaccRepo: vaccRepo,
		caseRepo: caseRepo,
		auditor:  auditor,
		metrics:  m,
		logger:   logger.With().Str("component", "vaccination").Logger(),
	}
}

// RecordDose logs one administered dose against a case and writes the
// audit entry attributing it to the administering staff member.
func (s *Service) RecordDose(ctx context.Context, personnelID, caseID uuid.UUID, req *model.CreateVaccinationRequest) (*model.VaccinationRecord, error) {
	if _, err := s.caseRepo.Get(ctx, caseID); err != nil {
		return nil, err
	}

	rec := &model.VaccinationRecord{
		CaseID:           caseID,
		PersonnelID:      personnelID,
		VaccineName:      req.VaccineName,
		DoseNumber:       req.DoseNumber,
		DateAdministered: req.DateAdministered,
		Route:            req.Route,
		Site:             req.Site,
		Remarks:          req.Remarks,
	}
	if err := s.vaccRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record dose: %w", err)
	}

	s.metrics.VaccinationsLogged.Inc()

	dose := strconv.Itoa(rec.DoseNumber)
	s.auditor.Log(ctx, personnelID, model.AuditActionInsert, model.AuditEntityVaccinationRecord, rec.ID, &audit.LogOptions{
		CaseID: &caseID,
		Changes: []audit.FieldChange{
			{Field: "vaccine_name", NewValue: &rec.VaccineName},
			{Field: "dose_number", NewValue: &dose},
			{Field: "date_administered", NewValue: &rec.DateAdministered},
		},
	})

	return rec, nil
}

// Schedule returns the dose history for a case in dose order.
func (s *Service) Schedule(ctx context.Context, caseID uuid.UUID) ([]*model.VaccinationRecord, error) {
	return s.vaccRepo.ListByCase(ctx, caseID)
}
