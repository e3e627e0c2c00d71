// Package pgtx holds the transaction helpers shared by the GORM repositories.
package pgtx

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// ForUpdate adds a row lock to the query on databases that support one.
// SQLite serializes writers at the database level and gets the query unchanged.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return db
}

// IsAbort reports whether err is a serialization failure or a deadlock.
func IsAbort(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
}

// Classify wraps err in a TransactionAbortError when the database aborted the
// transaction and returns it unchanged otherwise.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsAbort(err) {
		return errs.NewTransactionAbortError(op, err)
	}
	return err
}
