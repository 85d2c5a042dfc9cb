package model

import (
	"time"

	"github.com/google/uuid"
)

// Role constants. A user's role tag says which extension table is
// expected to hold its profile row; the schema does not cross-check
// the two, the service layer does.
const (
	RolePatient         = "patient"
	RoleClinicPersonnel = "clinic_personnel"
	RoleSystemAdmin     = "system_admin"
)

// User represents the root identity record
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one of the enumerated role tags.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleClinicPersonnel, RoleSystemAdmin:
		return true
	}
	return false
}
