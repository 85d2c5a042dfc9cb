package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the role extension row for users with role 'patient'.
// notification_settings is an opaque JSON blob; the schema does not
// constrain its shape.
type Patient struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	UserID                uuid.UUID `json:"user_id" db:"user_id"`
	FirstName             *string   `json:"first_name" db:"first_name"`
	LastName              *string   `json:"last_name" db:"last_name"`
	PhoneNumber           *string   `json:"phone_number" db:"phone_number"`
	Address               *string   `json:"address" db:"address"`
	DateOfBirth           *string   `json:"date_of_birth" db:"date_of_birth"`
	Age                   *int      `json:"age" db:"age"`
	Gender                *string   `json:"gender" db:"gender"`
	Allergies             *string   `json:"allergies" db:"allergies"`
	PreExistingConditions *string   `json:"pre_existing_conditions" db:"pre_existing_conditions"`
	CurrentMedications    *string   `json:"current_medications" db:"current_medications"`
	NotificationSettings  *string   `json:"notification_settings" db:"notification_settings"`
	OnboardingCompleted   int       `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}

// PatientProfile joins the extension row with the identity fields the
// dashboard needs.
type PatientProfile struct {
	Patient
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
}

type UpdatePatientRequest struct {
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	DateOfBirth           *string `json:"date_of_birth"`
	Age                   *int    `json:"age"`
	Gender                *string `json:"gender"`
	Address               *string `json:"address"`
	PhoneNumber           *string `json:"phone_number"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	Allergies             *string `json:"allergies"`
	PreExistingConditions *string `json:"pre_existing_conditions"`
	CurrentMedications    *string `json:"current_medications"`
	NewPassword           *string `json:"new_password" binding:"omitempty,min=8"`
}
