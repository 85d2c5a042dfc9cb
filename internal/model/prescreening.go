package model

import (
	"time"

	"github.com/google/uuid"
)

// Bleeding type constants derived from the intake form
const (
	BleedingNone        = "None"
	BleedingSpontaneous = "Spontaneous"
	BleedingInduced     = "Induced"
	BleedingBoth        = "Both spontaneous and induced"
)

// PreScreeningDetail holds wound and immunization history for a case.
// Strictly one per case: CaseID is the primary key.
type PreScreeningDetail struct {
	CaseID                  uuid.UUID `json:"case_id" db:"case_id"`
	WoundDescription        *string   `json:"wound_description" db:"wound_description"`
	BleedingType            *string   `json:"bleeding_type" db:"bleeding_type"`
	LocalTreatment          *string   `json:"local_treatment" db:"local_treatment"`
	PatientPrevImmunization *string   `json:"patient_prev_immunization" db:"patient_prev_immunization"`
	PrevVaccineDate         *string   `json:"prev_vaccine_date" db:"prev_vaccine_date"`
	TetanusDate             *string   `json:"tetanus_date" db:"tetanus_date"`
	HRTIGImmunization       int       `json:"hrtig_immunization" db:"hrtig_immunization"`
	HRTIGDate               *string   `json:"hrtig_date" db:"hrtig_date"`
	ComputedScore           *int      `json:"computed_score" db:"computed_score"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// PreScreeningGuideline is a versioned catalog entry of scoring
// criteria. Entries are deactivated, never deleted, so evaluation
// history stays resolvable. condition_expression is an opaque JSON
// blob interpreted by the consuming application.
type PreScreeningGuideline struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	CriteriaName        string    `json:"criteria_name" db:"criteria_name"`
	ConditionExpression *string   `json:"condition_expression" db:"condition_expression"`
	ScoreValue          int       `json:"score_value" db:"score_value"`
	RiskLevel           string    `json:"risk_level" db:"risk_level"`
	Version             int       `json:"version" db:"version"`
	IsActive            int       `json:"is_active" db:"is_active"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// PreScreeningEvaluation records the score actually applied when a
// guideline entry matched a case.
type PreScreeningEvaluation struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CaseID       uuid.UUID `json:"case_id" db:"case_id"`
	GuidelineID  uuid.UUID `json:"guideline_id" db:"guideline_id"`
	AppliedScore int       `json:"applied_score" db:"applied_score"`
	EvaluatedAt  time.Time `json:"evaluated_at" db:"evaluated_at"`
}

// PreScreeningSubmission is the intake form for a new exposure case.
type PreScreeningSubmission struct {
	TypeOfExposure          string  `json:"type_of_exposure" binding:"required"`
	ExposureDate            string  `json:"exposure_date" binding:"required,isodate"`
	ExposureTime            *string `json:"exposure_time"`
	WoundDescription        *string `json:"wound_description"`
	SpontaneousBleeding     bool    `json:"spontaneous_bleeding"`
	InducedBleeding         bool    `json:"induced_bleeding"`
	PatientPrevImmunization *string `json:"patient_prev_immunization"`
	PrevVaccineDate         *string `json:"prev_vaccine_date"`
	AnimalType              string  `json:"animal_type" binding:"required"`
	OtherAnimal             *string `json:"other_animal"`
	AnimalStatus            string  `json:"animal_status" binding:"required"`
	AnimalVaccination       *string `json:"animal_vaccination"`
	LocalTreatment          string  `json:"local_treatment" binding:"required"`
	OtherTreatment          *string `json:"other_treatment"`
	PlaceOfExposure         string  `json:"place_of_exposure" binding:"required"`
	PlaceOfExposureOther    *string `json:"place_of_exposure_other" binding:"required_if=PlaceOfExposure Other"`
	AffectedArea            string  `json:"affected_area" binding:"required"`
	AffectedAreaOther       *string `json:"affected_area_other" binding:"required_if=AffectedArea Other"`
	TetanusImmunization     string  `json:"tetanus_immunization" binding:"required"`
	TetanusDate             *string `json:"tetanus_date"`
	HRTIGImmunization       string  `json:"hrtig_immunization" binding:"required"`
	HRTIGDate               *string `json:"hrtig_date" binding:"required_if=HRTIGImmunization Yes"`
	WithAppointment         bool    `json:"with_appointment"`
}

type CreateGuidelineRequest struct {
	CriteriaName        string  `json:"criteria_name" binding:"required"`
	ConditionExpression *string `json:"condition_expression"`
	ScoreValue          int     `json:"score_value" binding:"required"`
	RiskLevel           string  `json:"risk_level" binding:"required"`
}
