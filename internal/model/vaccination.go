package model

import (
	"time"

	"github.com/google/uuid"
)

// VaccinationRecord is one administered dose tied to a case and the
// administering staff member. The personnel reference is RESTRICTed:
// dose history cannot be orphaned by deleting the clinician's record.
type VaccinationRecord struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CaseID           uuid.UUID `json:"case_id" db:"case_id"`
	PersonnelID      uuid.UUID `json:"personnel_id" db:"personnel_id"`
	VaccineName      string    `json:"vaccine_name" db:"vaccine_name"`
	DoseNumber       int       `json:"dose_number" db:"dose_number"`
	DateAdministered string    `json:"date_administered" db:"date_administered"`
	Route            *string   `json:"route" db:"route"`
	Site             *string   `json:"site" db:"site"`
	Remarks          *string   `json:"remarks" db:"remarks"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type CreateVaccinationRequest struct {
	VaccineName      string  `json:"vaccine_name" binding:"required"`
	DoseNumber       int     `json:"dose_number" binding:"required,min=1"`
	DateAdministered string  `json:"date_administered" binding:"required,isodate"`
	Route            *string `json:"route"`
	Site             *string `json:"site"`
	Remarks          *string `json:"remarks"`
}
