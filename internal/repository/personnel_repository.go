package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/personnel"
)

type PersonnelRepository interface {
	WithTx(tx database.Tx) PersonnelRepository

	List(ctx context.Context) ([]personnel.Person, error)
	GetByID(ctx context.Context, id uuid.UUID) (personnel.Person, error)
	GetByEmail(ctx context.Context, email string) (personnel.Person, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, p personnel.Person) error
	Update(ctx context.Context, p personnel.Person) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status personnel.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresPersonnelRepository struct {
	q database.Executor
}

func NewPostgresPersonnelRepository(db database.DB) *PostgresPersonnelRepository {
	return &PostgresPersonnelRepository{q: db}
}

func (r *PostgresPersonnelRepository) WithTx(tx database.Tx) PersonnelRepository {
	return &PostgresPersonnelRepository{q: tx}
}

const personColumns = `id, name, email, COALESCE(password_hash, ''), role_title, experience_level, status, created_at`

func (r *PostgresPersonnelRepository) List(ctx context.Context) ([]personnel.Person, error) {
	rows, err := r.q.Query(ctx, `SELECT `+personColumns+` FROM personnel ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]personnel.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPersonnelRepository) GetByID(ctx context.Context, id uuid.UUID) (personnel.Person, error) {
	row := r.q.QueryRow(ctx, `SELECT `+personColumns+` FROM personnel WHERE id = $1`, id)
	p, err := scanPerson(row)
	if err != nil {
		if isNoRows(err) {
			return personnel.Person{}, ErrPersonnelNotFound
		}
		return personnel.Person{}, err
	}
	return p, nil
}

func (r *PostgresPersonnelRepository) GetByEmail(ctx context.Context, email string) (personnel.Person, error) {
	row := r.q.QueryRow(ctx, `SELECT `+personColumns+` FROM personnel WHERE email = $1`, email)
	p, err := scanPerson(row)
	if err != nil {
		if isNoRows(err) {
			return personnel.Person{}, ErrPersonnelNotFound
		}
		return personnel.Person{}, err
	}
	return p, nil
}

func (r *PostgresPersonnelRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM personnel WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresPersonnelRepository) Create(ctx context.Context, p personnel.Person) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO personnel (id, name, email, password_hash, role_title, experience_level, status)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		p.ID, p.Name, p.Email, p.PasswordHash, p.RoleTitle, p.ExperienceLevel, p.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *PostgresPersonnelRepository) Update(ctx context.Context, p personnel.Person) error {
	affected, err := r.q.Exec(ctx,
		`UPDATE personnel
		 SET name = $1, email = $2, role_title = $3, experience_level = $4, status = $5
		 WHERE id = $6`,
		p.Name, p.Email, p.RoleTitle, p.ExperienceLevel, p.Status, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if affected == 0 {
		return ErrPersonnelNotFound
	}
	return nil
}

func (r *PostgresPersonnelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status personnel.Status) error {
	affected, err := r.q.Exec(ctx, `UPDATE personnel SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPersonnelNotFound
	}
	return nil
}

func (r *PostgresPersonnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.q.Exec(ctx, `DELETE FROM personnel WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPersonnelNotFound
	}
	return nil
}

func scanPerson(row database.Row) (personnel.Person, error) {
	var p personnel.Person
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.RoleTitle, &p.ExperienceLevel, &p.Status, &p.CreatedAt)
	return p, err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
