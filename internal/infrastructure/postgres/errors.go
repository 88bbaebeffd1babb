package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/workspace-hub/internal/domain/repository"
)

// PostgreSQL error codes
const (
	uniqueViolation    = "23505"
	invalidTextRepr    = "22P02"
	usersEmailUniqueCk = "users_email_unique"
)

// translate maps driver errors onto repository sentinels. Errors it does not
// recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation && pgErr.ConstraintName == usersEmailUniqueCk:
			return repository.ErrEmailInUse
		case pgErr.Code == invalidTextRepr:
			// malformed uuid: no such row can exist
			return repository.ErrNotFound
		}
	}
	return err
}
