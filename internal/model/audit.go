package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit action constants. The schema CHECKs the column to exactly
// this set.
const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// Audit entity types
const (
	AuditEntityCase               = "case"
	AuditEntityPreScreeningDetail = "pre_screening_detail"
	AuditEntityAppointment        = "appointment"
	AuditEntityVaccinationRecord  = "vaccination_record"
	AuditEntityCaseNote           = "case_note"
	AuditEntityPatient            = "patient"
	AuditEntityGuideline          = "pre_screening_guideline"
)

// MedicalAuditLog is one immutable change record: the acting staff
// member (required), optionally the affected user and case, and
// field-level before/after values. Rows are inserted and never
// touched again.
type MedicalAuditLog struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PersonnelID uuid.UUID  `json:"personnel_id" db:"personnel_id"`
	UserID      *uuid.UUID `json:"user_id" db:"user_id"`
	CaseID      *uuid.UUID `json:"case_id" db:"case_id"`
	EntityType  string     `json:"entity_type" db:"entity_type"`
	EntityID    uuid.UUID  `json:"entity_id" db:"entity_id"`
	Action      string     `json:"action" db:"action"`
	FieldName   *string    `json:"field_name" db:"field_name"`
	OldValue    *string    `json:"old_value" db:"old_value"`
	NewValue    *string    `json:"new_value" db:"new_value"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type AuditFilters struct {
	PersonnelID uuid.UUID
	CaseID      uuid.UUID
	EntityType  string
	EntityID    uuid.UUID
	Action      string
}
