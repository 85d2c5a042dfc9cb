package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/internal/email"
	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/pkg/auth"
	"github.com/Ang3lito/rabiesresq/pkg/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
	logger   zerolog.Logger
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, emailSvc email.Service, logger zerolog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		emailSvc: emailSvc,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a patient account: the identity row and its
// patient extension commit in one transaction. Staff and admin
// accounts are provisioned elsewhere, never through self-service.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RolePatient,
	}
	patient := &model.Patient{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		DateOfBirth:           req.DateOfBirth,
		Age:                   req.Age,
		Gender:                req.Gender,
		Allergies:             req.Allergies,
		PreExistingConditions: req.PreExistingConditions,
		CurrentMedications:    req.CurrentMedications,
		NotificationSettings:  req.NotificationSettings,
	}

	if err := s.userRepo.CreateWithPatient(ctx, user, patient); err != nil {
		if errors.Is(err, repository.ErrUniquenessViolation) {
			if _, lookupErr := s.userRepo.GetByEmail(ctx, req.Email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	name := user.Username
	if patient.FirstName != nil && *patient.FirstName != "" {
		name = *patient.FirstName
	}
	if err := s.emailSvc.SendWelcome(ctx, user.Email, name); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
	}

	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	// Re-read the user so a deleted account cannot keep minting tokens.
	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issueTokens(user)
}

// ForgotPassword mails a reset link when the address is known. The
// response is identical either way so the endpoint cannot be used to
// probe for registered emails.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.jwtSvc.GenerateResetToken(user)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.emailSvc.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword sets a new password against a valid reset token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.jwtSvc.ValidateResetToken(token)
	if err != nil {
		return fmt.Errorf("invalid reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info().Str("user_id", claims.UserID.String()).Msg("password reset completed")
	return nil
}

// ValidateToken parses an access token into its claims.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	return s.jwtSvc.ValidateToken(token)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtSvc.AccessExpiry().Seconds()),
		Role:         user.Role,
	}, nil
}
