package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/assignment"
	"resource-hub/internal/pkg/date"
)

// AssignmentWithPerson is an assignment row joined with the person's display
// fields, for project detail views.
type AssignmentWithPerson struct {
	assignment.Assignment
	PersonnelName string
	RoleTitle     string
}

type AssignmentRepository interface {
	WithTx(tx database.Tx) AssignmentRepository

	FindByProjectAndPersonnel(ctx context.Context, projectID, personnelID uuid.UUID) (assignment.Assignment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]AssignmentWithPerson, error)
	ListIntersectingByPersonnel(ctx context.Context, personnelID uuid.UUID, from, to date.Date) ([]assignment.Assignment, error)
	ListIntersecting(ctx context.Context, from, to date.Date) ([]assignment.Assignment, error)
	PersonnelAssignedToProject(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]bool, error)
	ExistsConflict(ctx context.Context, personnelID, excludeProjectID uuid.UUID, from, to date.Date) (bool, error)
	Create(ctx context.Context, a assignment.Assignment) error
	DeleteByProjectAndPersonnel(ctx context.Context, projectID, personnelID uuid.UUID) (bool, error)
	UpdateDatesByProject(ctx context.Context, projectID uuid.UUID, start, end date.Date) error
}

type PostgresAssignmentRepository struct {
	q database.Executor
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{q: db}
}

func (r *PostgresAssignmentRepository) WithTx(tx database.Tx) AssignmentRepository {
	return &PostgresAssignmentRepository{q: tx}
}

const assignmentColumns = `id, project_id, personnel_id, capacity_percentage, assigned_start_date, assigned_end_date, assigned_at`

func (r *PostgresAssignmentRepository) FindByProjectAndPersonnel(ctx context.Context, projectID, personnelID uuid.UUID) (assignment.Assignment, error) {
	row := r.q.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM project_assignments WHERE project_id = $1 AND personnel_id = $2`,
		projectID, personnelID,
	)
	a, err := scanAssignment(row)
	if err != nil {
		if isNoRows(err) {
			return assignment.Assignment{}, ErrAssignmentNotFound
		}
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (r *PostgresAssignmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]AssignmentWithPerson, error) {
	rows, err := r.q.Query(ctx,
		`SELECT pa.id, pa.project_id, pa.personnel_id, pa.capacity_percentage,
		        pa.assigned_start_date, pa.assigned_end_date, pa.assigned_at,
		        p.name, p.role_title
		 FROM project_assignments pa
		 JOIN personnel p ON p.id = pa.personnel_id
		 WHERE pa.project_id = $1
		 ORDER BY p.name ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AssignmentWithPerson, 0)
	for rows.Next() {
		var item AssignmentWithPerson
		var start, end time.Time
		err := rows.Scan(
			&item.ID, &item.ProjectID, &item.PersonnelID, &item.CapacityPercentage,
			&start, &end, &item.AssignedAt,
			&item.PersonnelName, &item.RoleTitle,
		)
		if err != nil {
			return nil, err
		}
		item.StartDate = date.FromTime(start)
		item.EndDate = date.FromTime(end)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) ListIntersectingByPersonnel(ctx context.Context, personnelID uuid.UUID, from, to date.Date) ([]assignment.Assignment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+assignmentColumns+`
		 FROM project_assignments
		 WHERE personnel_id = $1 AND assigned_end_date >= $2 AND assigned_start_date <= $3`,
		personnelID, from.Time(), to.Time(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *PostgresAssignmentRepository) ListIntersecting(ctx context.Context, from, to date.Date) ([]assignment.Assignment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+assignmentColumns+`
		 FROM project_assignments
		 WHERE assigned_end_date >= $1 AND assigned_start_date <= $2`,
		from.Time(), to.Time(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *PostgresAssignmentRepository) PersonnelAssignedToProject(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.q.Query(ctx,
		`SELECT personnel_id FROM project_assignments WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) ExistsConflict(ctx context.Context, personnelID, excludeProjectID uuid.UUID, from, to date.Date) (bool, error) {
	var exists bool
	row := r.q.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM project_assignments
		   WHERE personnel_id = $1 AND project_id != $2
		     AND assigned_end_date >= $3 AND assigned_start_date <= $4
		 )`,
		personnelID, excludeProjectID, from.Time(), to.Time(),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresAssignmentRepository) Create(ctx context.Context, a assignment.Assignment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO project_assignments (id, project_id, personnel_id, capacity_percentage, assigned_start_date, assigned_end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.ProjectID, a.PersonnelID, a.CapacityPercentage, a.StartDate.Time(), a.EndDate.Time(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAssignment
		}
		return err
	}
	return nil
}

func (r *PostgresAssignmentRepository) DeleteByProjectAndPersonnel(ctx context.Context, projectID, personnelID uuid.UUID) (bool, error) {
	affected, err := r.q.Exec(ctx,
		`DELETE FROM project_assignments WHERE project_id = $1 AND personnel_id = $2`,
		projectID, personnelID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresAssignmentRepository) UpdateDatesByProject(ctx context.Context, projectID uuid.UUID, start, end date.Date) error {
	_, err := r.q.Exec(ctx,
		`UPDATE project_assignments SET assigned_start_date = $1, assigned_end_date = $2 WHERE project_id = $3`,
		start.Time(), end.Time(), projectID,
	)
	return err
}

func scanAssignment(row database.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	var start, end time.Time
	err := row.Scan(&a.ID, &a.ProjectID, &a.PersonnelID, &a.CapacityPercentage, &start, &end, &a.AssignedAt)
	if err != nil {
		return assignment.Assignment{}, err
	}
	a.StartDate = date.FromTime(start)
	a.EndDate = date.FromTime(end)
	return a, nil
}

func scanAssignments(rows database.Rows) ([]assignment.Assignment, error) {
	out := make([]assignment.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
