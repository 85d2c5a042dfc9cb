package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment status constants
const (
	AppointmentStatusScheduled = "Scheduled"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
	AppointmentStatusMissed    = "Missed"
)

// Appointment type constants
const (
	AppointmentTypePreScreening = "Pre-screening"
	AppointmentTypeVaccination  = "Vaccination"
	AppointmentTypeFollowUp     = "Follow-up"
)

// Appointment is a scheduled encounter for a case. PersonnelID goes
// NULL when the assigned staff member is removed; the appointment
// itself survives. QueuePosition orders same-day encounters and is
// owned entirely by the application.
type Appointment struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	PatientID           uuid.UUID  `json:"patient_id" db:"patient_id"`
	ClinicID            uuid.UUID  `json:"clinic_id" db:"clinic_id"`
	CaseID              uuid.UUID  `json:"case_id" db:"case_id"`
	PersonnelID         *uuid.UUID `json:"personnel_id" db:"personnel_id"`
	AppointmentDatetime string     `json:"appointment_datetime" db:"appointment_datetime"`
	Status              string     `json:"status" db:"status"`
	Type                *string    `json:"type" db:"type"`
	QueuePosition       *int       `json:"queue_position" db:"queue_position"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateAppointmentRequest struct {
	CaseID              string  `json:"case_id" binding:"required,uuid"`
	ClinicID            string  `json:"clinic_id" binding:"required,uuid"`
	PersonnelID         *string `json:"personnel_id" binding:"omitempty,uuid"`
	AppointmentDatetime string  `json:"appointment_datetime" binding:"required"`
	Type                *string `json:"type"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	ClinicID  uuid.UUID
	CaseID    uuid.UUID
	Status    string
	Date      string
}
