package content

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

const (
	guidanceCacheTTL     = 5 * time.Minute
	guidanceCacheCleanup = 10 * time.Minute
)

// Service serves clinic-authored content: generated reports and the
// patient guidance library. Published guidance is read far more often
// than written, so those lists go through a short-lived cache.
type Service struct {
	reportRepo   repository.ReportRepository
	guidanceRepo repository.GuidanceRepository
	cache        *cache.Cache
	logger       zerolog.Logger
}

func NewService(reportRepo repository.ReportRepository, guidanceRepo repository.GuidanceRepository, logger zerolog.Logger) *Service {
	return &Service{
		reportRepo:   reportRepo,
		guidanceRepo: guidanceRepo,
		cache:        cache.New(guidanceCacheTTL, guidanceCacheCleanup),
		logger:       logger.With().Str("component", "content").Logger(),
	}
}

func (s *Service) CreateReport(ctx context.Context, generatedBy *uuid.UUID, req *model.CreateReportRequest) (*model.Report, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}

	rep := &model.Report{
		ClinicID:    clinicID,
		GeneratedBy: generatedBy,
		ReportType:  req.ReportType,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Content:     req.Content,
	}
	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return rep, nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	return s.reportRepo.Get(ctx, id)
}

func (s *Service) ListReports(ctx context.Context, clinicID uuid.UUID) ([]*model.Report, error) {
	return s.reportRepo.ListByClinic(ctx, clinicID)
}

func (s *Service) CreateGuidance(ctx context.Context, authorID *uuid.UUID, req *model.CreateGuidanceRequest) (*model.PatientGuidance, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}

	g := &model.PatientGuidance{
		ClinicID: clinicID,
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if err := s.guidanceRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create guidance: %w", err)
	}
	return g, nil
}

// PublishGuidance makes a draft visible to patients and drops the
// clinic's cached list.
func (s *Service) PublishGuidance(ctx context.Context, id uuid.UUID) error {
	g, err := s.guidanceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guidanceRepo.Publish(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(guidanceCacheKey(g.ClinicID))
	return nil
}

// ListPublishedGuidance serves the patient-facing library through the
// read-through cache.
func (s *Service) ListPublishedGuidance(ctx context.Context, clinicID uuid.UUID) ([]*model.PatientGuidance, error) {
	key := guidanceCacheKey(clinicID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.PatientGuidance), nil
	}

	items, err := s.guidanceRepo.ListByClinic(ctx, clinicID, true)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items, cache.DefaultExpiration)
	return items, nil
}

// ListAllGuidance returns drafts and published entries, uncached, for
// clinic staff.
func (s *Service) ListAllGuidance(ctx context.Context, clinicID uuid.UUID) ([]*model.PatientGuidance, error) {
	return s.guidanceRepo.ListByClinic(ctx, clinicID, false)
}

func guidanceCacheKey(clinicID uuid.UUID) string {
	return "guidance:" + clinicID.String()
}
