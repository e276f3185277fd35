// Package pgerrs translates gorm and postgres failures into the errors of
// internal/pkg/errs.
package pgerrs

import (
	"errors"

	"deliverus/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the repositories care about.
const (
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
	SerializationFail   = "40001"
	DeadlockDetected    = "40P01"
)

// Wrap turns err into a *errs.PersistenceError for operation, keeping the
// SQLSTATE when the failure came from postgres. Lock conflicts become an
// *errs.ConflictError the client may retry. Not-found results are mapped
// by the repositories themselves and must not reach Wrap.
func Wrap(operation string, err error) error {
	if err == nil {
		return nil
	}

	var perr *errs.PersistenceError
	if errors.As(err, &perr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if IsLockConflict(err) {
			return errs.NewConflictErrorWithCause("concurrent update, retry the request", err)
		}
		return errs.NewPersistenceErrorWithCode(operation, pgErr.Code, err)
	}

	return errs.NewPersistenceError(operation, err)
}

// IsLockConflict reports a transaction aborted by postgres because of a
// concurrent one: a serialization failure or a deadlock.
func IsLockConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == SerializationFail || pgErr.Code == DeadlockDetected
}

// NotFoundOr returns an *errs.ObjectNotFoundError for gorm.ErrRecordNotFound
// and Wrap(operation, err) for anything else.
func NotFoundOr(operation, paramName string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return Wrap(operation, err)
}

// Code returns the SQLSTATE carried by err, or "" when there is none.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var perr *errs.PersistenceError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ""
}
