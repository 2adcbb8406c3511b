// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"inkwell/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes surfaced as validation errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// mapError converts storage errors into the application error taxonomy.
func mapError(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return models.NewValidationError("Referenced " + strings.ToLower(resource) + " does not exist")
		case pgUniqueViolation:
			return models.NewConflictError(resource + " already exists")
		}
	}

	// Fallback for drivers that do not expose SQLSTATE (e.g. sqlite in tests).
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "foreign key constraint"):
		return models.NewValidationError("Referenced " + strings.ToLower(resource) + " does not exist")
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return models.NewConflictError(resource + " already exists")
	}

	return models.NewInternalError(err)
}
