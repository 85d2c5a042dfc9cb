package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Ang3lito/rabiesresq/internal/repository"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "nil passes through",
			in:   nil,
			want: nil,
		},
		{
			name: "missing row becomes ErrNotFound",
			in:   sql.ErrNoRows,
			want: repository.ErrNotFound,
		},
		{
			name: "23505 becomes uniqueness violation",
			in:   &pq.Error{Code: "23505", Constraint: "users_email_key"},
			want: repository.ErrUniquenessViolation,
		},
		{
			name: "23503 becomes foreign key violation",
			in:   &pq.Error{Code: "23503", Constraint: "cases_clinic_id_fkey"},
			want: repository.ErrForeignKeyViolation,
		},
		{
			name: "23514 becomes check violation",
			in:   &pq.Error{Code: "23514", Constraint: "users_role_check"},
			want: repository.ErrCheckViolation,
		},
		{
			name: "23502 becomes not null violation",
			in:   &pq.Error{Code: "23502", Column: "email"},
			want: repository.ErrNotNullViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	unknown := errors.New("connection reset")
	assert.Equal(t, unknown, mapError(unknown))

	// Other SQLSTATE classes are not constraint violations.
	serialization := &pq.Error{Code: "40001"}
	assert.Equal(t, error(serialization), mapError(serialization))
}

func TestMapErrorKeepsConstraintName(t *testing.T) {
	err := mapError(&pq.Error{Code: "23505", Constraint: "reference_codes_code_key"})
	assert.ErrorIs(t, err, repository.ErrUniquenessViolation)
	assert.Contains(t, err.Error(), "reference_codes_code_key")
}

func TestMapErrorWrapped(t *testing.T) {
	// Drivers often arrive wrapped by the calling layer.
	inner := &pq.Error{Code: "23503", Constraint: "appointments_case_id_fkey"}
	err := mapError(fmt.Errorf("insert appointment: %w", inner))
	assert.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}
