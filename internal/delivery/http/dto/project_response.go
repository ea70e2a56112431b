package dto

import (
	"github.com/google/uuid"

	"resource-hub/internal/pkg/date"
)

type ProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *date.Date `json:"start_date"`
	EndDate     *date.Date `json:"end_date"`
	Status      string     `json:"status"`
}

type ProjectRequirementResponse struct {
	SkillID             uuid.UUID `json:"skill_id"`
	SkillName           string    `json:"skill_name"`
	MinProficiencyLevel int       `json:"min_proficiency_level"`
}

type ProjectAssigneeResponse struct {
	PersonnelID        uuid.UUID `json:"personnel_id"`
	Name               string    `json:"name"`
	RoleTitle          string    `json:"role_title"`
	CapacityPercentage int       `json:"capacity_percentage"`
	StartDate          date.Date `json:"start_date"`
	EndDate            date.Date `json:"end_date"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Requirements      []ProjectRequirementResponse `json:"requirements"`
	AssignedPersonnel []ProjectAssigneeResponse    `json:"assigned_personnel"`
}
