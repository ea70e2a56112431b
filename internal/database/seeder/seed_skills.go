package seeder

import (
	"context"

	"github.com/google/uuid"

	"resource-hub/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

type seedSkill struct {
	Name        string
	Category    string
	Description string
}

var defaultSkills = []seedSkill{
	{Name: "Go", Category: "Backend", Description: "Go services and tooling"},
	{Name: "PostgreSQL", Category: "Database", Description: "Schema design, SQL, tuning"},
	{Name: "React", Category: "Frontend", Description: "SPA development"},
	{Name: "TypeScript", Category: "Frontend", Description: "Typed JavaScript"},
	{Name: "Kubernetes", Category: "Infrastructure", Description: "Container orchestration"},
	{Name: "Terraform", Category: "Infrastructure", Description: "Infrastructure as code"},
	{Name: "Python", Category: "Backend", Description: "Scripting and services"},
	{Name: "Project Management", Category: "Management", Description: "Planning and delivery"},
	{Name: "UI/UX Design", Category: "Design", Description: "Interface and experience design"},
	{Name: "Data Analysis", Category: "Data", Description: "Reporting and analysis"},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	for _, s := range defaultSkills {
		_, err := db.Exec(ctx,
			`INSERT INTO skills (id, skill_name, category, description)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (skill_name) DO NOTHING`,
			uuid.New(), s.Name, s.Category, s.Description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
