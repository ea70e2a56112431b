package repository

import (
	"context"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/personnel"
)

type PersonnelSkillRepository interface {
	WithTx(tx database.Tx) PersonnelSkillRepository

	ListByPersonnel(ctx context.Context, personnelID uuid.UUID) ([]personnel.Skill, error)
	ListAll(ctx context.Context) ([]personnel.Skill, error)
	DeleteByPersonnel(ctx context.Context, personnelID uuid.UUID) error
	Insert(ctx context.Context, entries []personnel.Skill) error
}

type PostgresPersonnelSkillRepository struct {
	q database.Executor
}

func NewPostgresPersonnelSkillRepository(db database.DB) *PostgresPersonnelSkillRepository {
	return &PostgresPersonnelSkillRepository{q: db}
}

func (r *PostgresPersonnelSkillRepository) WithTx(tx database.Tx) PersonnelSkillRepository {
	return &PostgresPersonnelSkillRepository{q: tx}
}

func (r *PostgresPersonnelSkillRepository) ListByPersonnel(ctx context.Context, personnelID uuid.UUID) ([]personnel.Skill, error) {
	rows, err := r.q.Query(ctx,
		`SELECT ps.personnel_id, ps.skill_id, s.skill_name, s.category, s.description, ps.proficiency_level
		 FROM personnel_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.personnel_id = $1
		 ORDER BY s.skill_name ASC`,
		personnelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPersonnelSkills(rows)
}

// ListAll returns the whole proficiency profile table, joined with skill
// names, for the matching engine's one-pass candidate build.
func (r *PostgresPersonnelSkillRepository) ListAll(ctx context.Context) ([]personnel.Skill, error) {
	rows, err := r.q.Query(ctx,
		`SELECT ps.personnel_id, ps.skill_id, s.skill_name, s.category, s.description, ps.proficiency_level
		 FROM personnel_skills ps
		 JOIN skills s ON s.id = ps.skill_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPersonnelSkills(rows)
}

func (r *PostgresPersonnelSkillRepository) DeleteByPersonnel(ctx context.Context, personnelID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM personnel_skills WHERE personnel_id = $1`, personnelID)
	return err
}

func (r *PostgresPersonnelSkillRepository) Insert(ctx context.Context, entries []personnel.Skill) error {
	for _, e := range entries {
		_, err := r.q.Exec(ctx,
			`INSERT INTO personnel_skills (personnel_id, skill_id, proficiency_level) VALUES ($1, $2, $3)`,
			e.PersonnelID, e.SkillID, e.ProficiencyLevel,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanPersonnelSkills(rows database.Rows) ([]personnel.Skill, error) {
	out := make([]personnel.Skill, 0)
	for rows.Next() {
		var s personnel.Skill
		if err := rows.Scan(&s.PersonnelID, &s.SkillID, &s.SkillName, &s.Category, &s.Description, &s.ProficiencyLevel); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
