package model

import (
	"time"

	"github.com/google/uuid"
)

// Risk level constants, WHO exposure categories
const (
	RiskCategoryI   = "Category I"
	RiskCategoryII  = "Category II"
	RiskCategoryIII = "Category III"
)

// Case status constants
const (
	CaseStatusOpen   = "Open"
	CaseStatusClosed = "Closed"
)

// Case is a single rabies-exposure incident tied to exactly one patient
// and one clinic. It anchors nearly all subsequent clinical writes and
// is never deleted in normal operation.
type Case struct {
	ID                       uuid.UUID `json:"id" db:"id"`
	PatientID                uuid.UUID `json:"patient_id" db:"patient_id"`
	ClinicID                 uuid.UUID `json:"clinic_id" db:"clinic_id"`
	ExposureDate             string    `json:"exposure_date" db:"exposure_date"`
	ExposureTime             *string   `json:"exposure_time" db:"exposure_time"`
	PlaceOfExposure          *string   `json:"place_of_exposure" db:"place_of_exposure"`
	AffectedArea             *string   `json:"affected_area" db:"affected_area"`
	TypeOfExposure           *string   `json:"type_of_exposure" db:"type_of_exposure"`
	AnimalDetail             *string   `json:"animal_detail" db:"animal_detail"`
	AnimalCondition          *string   `json:"animal_condition" db:"animal_condition"`
	RiskLevel                string    `json:"risk_level" db:"risk_level"`
	TetanusProphylaxisStatus *string   `json:"tetanus_prophylaxis_status" db:"tetanus_prophylaxis_status"`
	Status                   string    `json:"status" db:"status"`
	CreatedAt                time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time `json:"updated_at" db:"updated_at"`
}

// CaseNote is a free-text annotation on a case.
type CaseNote struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CaseID       uuid.UUID `json:"case_id" db:"case_id"`
	AuthorUserID uuid.UUID `json:"author_user_id" db:"author_user_id"`
	Note         string    `json:"note" db:"note"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ReferenceCode is the single access code issued per case.
type ReferenceCode struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CaseID    uuid.UUID  `json:"case_id" db:"case_id"`
	Code      string     `json:"code" db:"code"`
	ExpiresAt *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type CreateCaseNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type CaseFilters struct {
	PatientID uuid.UUID
	ClinicID  uuid.UUID
	RiskLevel string
	Status    string
}
