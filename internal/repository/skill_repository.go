package repository

import (
	"context"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/skill"
)

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) error
	Update(ctx context.Context, s skill.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresSkillRepository struct {
	q database.Executor
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{q: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, skill_name, category, description FROM skills ORDER BY skill_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.q.QueryRow(ctx,
		`SELECT id, skill_name, category, description FROM skills WHERE id = $1`, id)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description); err != nil {
		if isNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO skills (id, skill_name, category, description) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Category, s.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSkillName
		}
		return err
	}
	return nil
}

func (r *PostgresSkillRepository) Update(ctx context.Context, s skill.Skill) error {
	affected, err := r.q.Exec(ctx,
		`UPDATE skills SET skill_name = $1, category = $2, description = $3 WHERE id = $4`,
		s.Name, s.Category, s.Description, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSkillName
		}
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.q.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}
