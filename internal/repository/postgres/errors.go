package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Ang3lito/rabiesresq/internal/repository"
)

// SQLSTATE codes raised by the engine for the four constraint kinds
// the schema relies on.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniquenessViolation = "23505"
	codeCheckViolation      = "23514"
)

// mapError folds driver errors into the repository taxonomy. Anything
// that is not a recognized constraint violation or a missing row
// passes through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case codeUniquenessViolation:
		return fmt.Errorf("%w: %s", repository.ErrUniquenessViolation, pqErr.Constraint)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrForeignKeyViolation, pqErr.Constraint)
	case codeCheckViolation:
		return fmt.Errorf("%w: %s", repository.ErrCheckViolation, pqErr.Constraint)
	case codeNotNullViolation:
		return fmt.Errorf("%w: %s", repository.ErrNotNullViolation, pqErr.Column)
	}
	return err
}
