package repository

import (
	"context"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/project"
)

type ProjectRequirementRepository interface {
	WithTx(tx database.Tx) ProjectRequirementRepository

	ListByProject(ctx context.Context, projectID uuid.UUID) ([]project.Requirement, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
	Insert(ctx context.Context, reqs []project.Requirement) error
}

type PostgresProjectRequirementRepository struct {
	q database.Executor
}

func NewPostgresProjectRequirementRepository(db database.DB) *PostgresProjectRequirementRepository {
	return &PostgresProjectRequirementRepository{q: db}
}

func (r *PostgresProjectRequirementRepository) WithTx(tx database.Tx) ProjectRequirementRepository {
	return &PostgresProjectRequirementRepository{q: tx}
}

func (r *PostgresProjectRequirementRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]project.Requirement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT pr.project_id, pr.skill_id, s.skill_name, pr.min_proficiency_level
		 FROM project_requirements pr
		 JOIN skills s ON s.id = pr.skill_id
		 WHERE pr.project_id = $1
		 ORDER BY s.skill_name ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Requirement, 0)
	for rows.Next() {
		var req project.Requirement
		if err := rows.Scan(&req.ProjectID, &req.SkillID, &req.SkillName, &req.MinProficiencyLevel); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectRequirementRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM project_requirements WHERE project_id = $1`, projectID)
	return err
}

func (r *PostgresProjectRequirementRepository) Insert(ctx context.Context, reqs []project.Requirement) error {
	for _, req := range reqs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO project_requirements (project_id, skill_id, min_proficiency_level) VALUES ($1, $2, $3)`,
			req.ProjectID, req.SkillID, req.MinProficiencyLevel,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
