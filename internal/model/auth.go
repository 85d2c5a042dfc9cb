package model

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username              string  `json:"username" binding:"required"`
	Email                 string  `json:"email" binding:"required,email"`
	Password              string  `json:"password" binding:"required,min=8"`
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	PhoneNumber           *string `json:"phone_number"`
	Address               *string `json:"address"`
	DateOfBirth           *string `json:"date_of_birth"`
	Age                   *int    `json:"age"`
	Gender                *string `json:"gender"`
	Allergies             *string `json:"allergies"`
	PreExistingConditions *string `json:"pre_existing_conditions"`
	CurrentMedications    *string `json:"current_medications"`
	NotificationSettings  *string `json:"notification_settings"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}
