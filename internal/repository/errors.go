package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"service-rider-platform/internal/apperr"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// conflicts names the unique constraints riders can hit through the API.
var conflicts = map[string]string{
	"riders_phone_key":       "phone already registered",
	"rider_transitions_pkey": "transition already recorded",
}

// classify maps Postgres constraint violations onto apperr sentinels and wraps everything else with op.
func classify(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			msg, ok := conflicts[pgErr.ConstraintName]
			if !ok {
				msg = "duplicate " + pgErr.ConstraintName
			}
			return fmt.Errorf("%w: %s", apperr.ErrConflict, msg)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperr.ErrInvalid, op, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
