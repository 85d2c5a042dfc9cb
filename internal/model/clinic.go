package model

import (
	"time"

	"github.com/google/uuid"
)

type Clinic struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Address       *string   `json:"address" db:"address"`
	ContactNumber *string   `json:"contact_number" db:"contact_number"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateClinicRequest struct {
	Name          string  `json:"name" binding:"required"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
}
