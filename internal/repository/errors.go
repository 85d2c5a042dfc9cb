package repository

import "errors"

// The storage error taxonomy. Every rejected write surfaces as exactly
// one of these, wrapped with constraint detail; callers branch with
// errors.Is.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check violation")
	ErrNotNullViolation    = errors.New("not null violation")
)
