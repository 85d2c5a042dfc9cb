package clinic

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

var (
	ErrClinicInUse   = errors.New("clinic is still referenced by personnel, cases or content")
	ErrDuplicate     = errors.New("duplicate username, email, employee id or license number")
	ErrStaffInUse    = errors.New("staff member still owns clinical records")
	ErrUnknownClinic = errors.New("clinic does not exist")
)

// Service covers clinic CRUD and staff/admin provisioning. Accounts
// created here come with their role extension in the same transaction;
// there is no self-service path for staff.
type Service struct {
	clinicRepo    repository.ClinicRepository
	personnelRepo repository.PersonnelRepository
	adminRepo     repository.AdminRepository
	userRepo      repository.UserRepository
	hasher        security.PasswordHasher
	logger        zerolog.Logger
}

func NewService(clinicRepo repository.ClinicRepository, personnelRepo repository.PersonnelRepository,
	adminRepo repository.AdminRepository, userRepo repository.UserRepository,
	hasher security.PasswordHasher, logger zerolog.Logger) *Service {
	return &Service{
		clinicRepo:    clinicRepo,
		personnelRepo: personnelRepo,
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		hasher:        hasher,
		logger:        logger.With().Str("component", "clinic").Logger(),
	}
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	clinic := &model.Clinic{
		Name:          req.Name,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	}
	if err := s.clinicRepo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	s.logger.Info().Str("clinic_id", clinic.ID.String()).Str("name", clinic.Name).Msg("clinic created")
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return s.clinicRepo.Get(ctx, id)
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	return s.clinicRepo.List(ctx)
}

func (s *Service) UpdateClinic(ctx context.Context, clinic *model.Clinic) error {
	return s.clinicRepo.Update(ctx, clinic)
}

// DeleteClinic removes an empty clinic. The database refuses while
// personnel, cases, reports or guidance still point at it.
func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	err := s.clinicRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrForeignKeyViolation) {
		return ErrClinicInUse
	}
	return err
}

// CreateStaff provisions a clinic_personnel account.
func (s *Service) CreateStaff(ctx context.Context, req *model.CreateStaffRequest) (*model.ClinicPersonnel, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}
	if _, err := s.clinicRepo.Get(ctx, clinicID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownClinic
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleClinicPersonnel,
	}
	personnel := &model.ClinicPersonnel{
		ClinicID:      clinicID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		EmployeeID:    req.EmployeeID,
		LicenseNumber: req.LicenseNumber,
		Title:         req.Title,
	}

	if err := s.userRepo.CreateWithPersonnel(ctx, user, personnel); err != nil {
		if errors.Is(err, repository.ErrUniquenessViolation) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}

	s.logger.Info().
		Str("personnel_id", personnel.ID.String()).
		Str("clinic_id", clinicID.String()).
		Str("title", personnel.Title).
		Msg("staff account provisioned")
	return personnel, nil
}

// CreateAdmin provisions a system_admin account.
func (s *Service) CreateAdmin(ctx context.Context, req *model.CreateAdminRequest) (*model.SystemAdmin, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleSystemAdmin,
	}
	admin := &model.SystemAdmin{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		EmployeeID: req.EmployeeID,
	}

	if err := s.userRepo.CreateWithAdmin(ctx, user, admin); err != nil {
		if errors.Is(err, repository.ErrUniquenessViolation) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info().Str("admin_id", admin.ID.String()).Msg("admin account provisioned")
	return admin, nil
}

// StaffProfile returns the caller's personnel row joined with identity
// and clinic fields.
func (s *Service) StaffProfile(ctx context.Context, userID uuid.UUID) (*model.StaffProfile, error) {
	return s.personnelRepo.GetProfileByUserID(ctx, userID)
}

// AdminProfile returns the caller's system admin extension row.
func (s *Service) AdminProfile(ctx context.Context, userID uuid.UUID) (*model.SystemAdmin, error) {
	return s.adminRepo.GetByUserID(ctx, userID)
}

// ListStaff returns the personnel roster for a clinic.
func (s *Service) ListStaff(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPersonnel, error) {
	return s.personnelRepo.ListByClinic(ctx, clinicID)
}

// RemoveStaff deletes a personnel row. The database refuses while the
// member still owns vaccination records or audit entries.
func (s *Service) RemoveStaff(ctx context.Context, id uuid.UUID) error {
	err := s.personnelRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrForeignKeyViolation) {
		return ErrStaffInUse
	}
	return err
}
