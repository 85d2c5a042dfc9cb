package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/security"
)

type Service struct {
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
	hasher      security.PasswordHasher
	logger      zerolog.Logger
}

func NewService(patientRepo repository.PatientRepository, userRepo repository.UserRepository,
	hasher security.PasswordHasher, logger zerolog.Logger) *Service {
	return &Service{
		patientRepo: patientRepo,
		userRepo:    userRepo,
		hasher:      hasher,
		logger:      logger.With().Str("component", "patient").Logger(),
	}
}

// GetProfile returns the patient extension joined with identity fields.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	return s.patientRepo.GetProfileByUserID(ctx, userID)
}

// UpdateProfile applies the changed fields. Email lives on the users
// row and password changes go through the hasher; everything else is
// patient extension data.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdatePatientRequest) (*model.PatientProfile, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyIfSet(&patient.FirstName, req.FirstName)
	applyIfSet(&patient.LastName, req.LastName)
	applyIfSet(&patient.DateOfBirth, req.DateOfBirth)
	applyIfSet(&patient.Gender, req.Gender)
	applyIfSet(&patient.Address, req.Address)
	applyIfSet(&patient.PhoneNumber, req.PhoneNumber)
	applyIfSet(&patient.Allergies, req.Allergies)
	applyIfSet(&patient.PreExistingConditions, req.PreExistingConditions)
	applyIfSet(&patient.CurrentMedications, req.CurrentMedications)
	if req.Age != nil {
		patient.Age = req.Age
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	if req.Email != nil && *req.Email != "" {
		if err := s.userRepo.UpdateEmail(ctx, userID, *req.Email); err != nil {
			if errors.Is(err, repository.ErrUniquenessViolation) {
				return nil, fmt.Errorf("email already in use: %w", err)
			}
			return nil, fmt.Errorf("failed to update email: %w", err)
		}
	}

	if req.NewPassword != nil && *req.NewPassword != "" {
		hash, err := s.hasher.Hash(*req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}

	return s.patientRepo.GetProfileByUserID(ctx, userID)
}

// CompleteOnboarding flips the one-time onboarding flag.
func (s *Service) CompleteOnboarding(ctx context.Context, userID uuid.UUID) error {
	return s.patientRepo.CompleteOnboarding(ctx, userID)
}

// List returns all patient extension rows.
func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.patientRepo.List(ctx)
}

func applyIfSet(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}
