package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPersonnelNotFound  = errors.New("personnel not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrAssignmentNotFound = errors.New("assignment not found")

	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateSkillName  = errors.New("skill name already exists")
	ErrDuplicateAssignment = errors.New("assignment already exists")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
