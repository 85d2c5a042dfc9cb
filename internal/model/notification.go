package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is addressed to a specific user or to a role class.
// A deleted target user leaves the row behind as an undeliverable
// record rather than dropping it.
type Notification struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        *uuid.UUID `json:"user_id" db:"user_id"`
	RecipientRole *string    `json:"recipient_role" db:"recipient_role"`
	CaseID        *uuid.UUID `json:"case_id" db:"case_id"`
	Subject       string     `json:"subject" db:"subject"`
	Message       string     `json:"message" db:"message"`
	IsSent        int        `json:"is_sent" db:"is_sent"`
	SentAt        *time.Time `json:"sent_at" db:"sent_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type CreateNotificationRequest struct {
	UserID        *string `json:"user_id" binding:"omitempty,uuid"`
	RecipientRole *string `json:"recipient_role"`
	CaseID        *string `json:"case_id" binding:"omitempty,uuid"`
	Subject       string  `json:"subject" binding:"required"`
	Message       string  `json:"message" binding:"required"`
}
