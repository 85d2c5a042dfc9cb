package model

import (
	"time"

	"github.com/google/uuid"
)

// Personnel title constants
const (
	TitleDoctor = "Doctor"
	TitleNurse  = "Nurse"
)

// SystemAdmin is the role extension row for users with role
// 'system_admin'. permissions_json is an opaque JSON blob.
type SystemAdmin struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	FirstName       *string   `json:"first_name" db:"first_name"`
	LastName        *string   `json:"last_name" db:"last_name"`
	EmployeeID      string    `json:"employee_id" db:"employee_id"`
	PermissionsJSON *string   `json:"permissions_json" db:"permissions_json"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ClinicPersonnel is the role extension row for users with role
// 'clinic_personnel'. The (clinic_id, user_id) pair is unique, as are
// employee_id and license_number.
type ClinicPersonnel struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	ClinicID      uuid.UUID `json:"clinic_id" db:"clinic_id"`
	FirstName     *string   `json:"first_name" db:"first_name"`
	LastName      *string   `json:"last_name" db:"last_name"`
	EmployeeID    string    `json:"employee_id" db:"employee_id"`
	LicenseNumber *string   `json:"license_number" db:"license_number"`
	Title         string    `json:"title" db:"title"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// StaffProfile joins a personnel row with user identity and clinic name.
type StaffProfile struct {
	ClinicPersonnel
	Username   string `json:"username" db:"username"`
	Email      string `json:"email" db:"email"`
	ClinicName string `json:"clinic_name" db:"clinic_name"`
}

type CreateStaffRequest struct {
	Username      string  `json:"username" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	ClinicID      string  `json:"clinic_id" binding:"required,uuid"`
	EmployeeID    string  `json:"employee_id" binding:"required"`
	Title         string  `json:"title" binding:"required,oneof=Doctor Nurse"`
	LicenseNumber *string `json:"license_number"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
}

type CreateAdminRequest struct {
	Username   string  `json:"username" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	EmployeeID string  `json:"employee_id" binding:"required"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
}
