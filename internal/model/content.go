package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is clinic-scoped generated content. The clinic cannot be
// deleted while reports reference it.
type Report struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ClinicID    uuid.UUID  `json:"clinic_id" db:"clinic_id"`
	GeneratedBy *uuid.UUID `json:"generated_by" db:"generated_by"`
	ReportType  string     `json:"report_type" db:"report_type"`
	PeriodStart *string    `json:"period_start" db:"period_start"`
	PeriodEnd   *string    `json:"period_end" db:"period_end"`
	Content     *string    `json:"content" db:"content"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// PatientGuidance is clinic-authored educational content.
type PatientGuidance struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ClinicID    uuid.UUID  `json:"clinic_id" db:"clinic_id"`
	AuthorID    *uuid.UUID `json:"author_id" db:"author_id"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	Category    *string    `json:"category" db:"category"`
	IsPublished int        `json:"is_published" db:"is_published"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateReportRequest struct {
	ClinicID    string  `json:"clinic_id" binding:"required,uuid"`
	ReportType  string  `json:"report_type" binding:"required"`
	PeriodStart *string `json:"period_start"`
	PeriodEnd   *string `json:"period_end"`
	Content     *string `json:"content"`
}

type CreateGuidanceRequest struct {
	ClinicID string  `json:"clinic_id" binding:"required,uuid"`
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	Category *string `json:"category"`
}
