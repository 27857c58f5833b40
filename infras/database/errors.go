package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrSerializationFailure = errors.New("serialization failure")
	ErrTransient            = errors.New("transient store failure")
	ErrUniqueViolation      = errors.New("unique constraint violation")
	ErrForeignKeyViolation  = errors.New("foreign key violation")
	ErrExclusionViolation   = errors.New("exclusion constraint violation")
)

// PostgreSQL SQLSTATE codes.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqExclusionViolation   = "23P01"
	pqAdminShutdown        = "57P01"
	pqConnectionException  = "08"
)

// Classify maps a driver error onto one of the package sentinels, or returns nil when the error
// carries no store condition the application reacts to.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgres(pqErr)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return classifySQLite(sqliteErr)
	}

	if errors.Is(err, driver.ErrBadConn) {
		return ErrTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrTransient
	}

	return nil
}

func classifyPostgres(err *pq.Error) error {
	switch string(err.Code) {
	case pqSerializationFailure, pqDeadlockDetected:
		return ErrSerializationFailure
	case pqUniqueViolation:
		return ErrUniqueViolation
	case pqForeignKeyViolation:
		return ErrForeignKeyViolation
	case pqExclusionViolation:
		return ErrExclusionViolation
	case pqAdminShutdown:
		return ErrTransient
	}

	if string(err.Code.Class()) == pqConnectionException {
		return ErrTransient
	}

	return nil
}

func classifySQLite(err sqlite3.Error) error {
	switch err.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return ErrTransient
	case sqlite3.ErrConstraint:
		switch err.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrUniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return ErrForeignKeyViolation
		}
	}

	return nil
}

// IsRetryable reports whether re-running the whole transaction may succeed.
func IsRetryable(err error) bool {
	switch Classify(err) {
	case ErrSerializationFailure, ErrTransient:
		return true
	default:
		return false
	}
}

func IsUniqueViolation(err error) bool {
	return errors.Is(Classify(err), ErrUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return errors.Is(Classify(err), ErrForeignKeyViolation)
}

func IsExclusionViolation(err error) bool {
	return errors.Is(Classify(err), ErrExclusionViolation)
}

// AsFailure wraps a store error for the caller. Failures pass through untouched and retryable
// conditions that outlived the retry policy become TransientStoreFailure.
func AsFailure(action string, err error) error {
	if err == nil || failure.IsFailure(err) {
		return err
	}

	wrapped := fmt.Errorf("failed to %s: %w", action, err)
	if IsRetryable(err) {
		return failure.TransientStoreFailure(wrapped) //nolint:wrapcheck
	}

	return wrapped
}
