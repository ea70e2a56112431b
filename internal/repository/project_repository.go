package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/project"
	"resource-hub/internal/pkg/date"
)

type ProjectRepository interface {
	WithTx(tx database.Tx) ProjectRepository

	List(ctx context.Context) ([]project.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (project.Project, error)
	Create(ctx context.Context, p project.Project) error
	Update(ctx context.Context, p project.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresProjectRepository struct {
	q database.Executor
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{q: db}
}

func (r *PostgresProjectRepository) WithTx(tx database.Tx) ProjectRepository {
	return &PostgresProjectRepository{q: tx}
}

func (r *PostgresProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description, start_date, end_date, status FROM projects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
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

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	row := r.q.QueryRow(ctx,
		`SELECT id, name, description, start_date, end_date, status FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if isNoRows(err) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p project.Project) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO projects (id, name, description, start_date, end_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, dateParam(p.StartDate), dateParam(p.EndDate), p.Status,
	)
	return err
}

func (r *PostgresProjectRepository) Update(ctx context.Context, p project.Project) error {
	affected, err := r.q.Exec(ctx,
		`UPDATE projects SET name = $1, description = $2, start_date = $3, end_date = $4, status = $5
		 WHERE id = $6`,
		p.Name, p.Description, dateParam(p.StartDate), dateParam(p.EndDate), p.Status, p.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func scanProject(row database.Row) (project.Project, error) {
	var p project.Project
	var start, end *time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &start, &end, &p.Status); err != nil {
		return project.Project{}, err
	}
	p.StartDate = datePtr(start)
	p.EndDate = datePtr(end)
	return p, nil
}

func dateParam(d *date.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func datePtr(t *time.Time) *date.Date {
	if t == nil {
		return nil
	}
	d := date.FromTime(*t)
	return &d
}
