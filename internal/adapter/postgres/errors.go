package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// pgCodeErrors maps SQLSTATE codes to domain sentinels.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation: the referenced row is gone
	"23514": domain.ErrValidation,    // check_violation
	"22P02": domain.ErrValidation,    // invalid_text_representation
	"40001": domain.ErrConflict,      // serialization_failure
	"40P01": domain.ErrConflict,      // deadlock_detected
}

// MapError converts pgx errors into domain sentinels, prefixed with the
// entity and, when not uuid.Nil, its id. Constraint violations also name the
// constraint. Context cancellation and unknown errors keep their cause.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	label := entity
	if id != uuid.Nil {
		label = entity + " " + id.String()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", label, err)
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", label, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s (%s): %w", label, pgErr.ConstraintName, mapped)
			}
			return fmt.Errorf("%s: %w", label, mapped)
		}
	}

	return fmt.Errorf("%s: %w", label, err)
}
