package database

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsConstraintViolation reports a unique violation of the named index.
func IsConstraintViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}

const (
	_peopleCPFKey       = "people_cpf_key"
	_usersUsernameKey   = "users_username_key"
	_photoHistoryActive = "photo_history_active_key"
)
