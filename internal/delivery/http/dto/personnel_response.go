package dto

import (
	"time"

	"github.com/google/uuid"
)

type PersonnelResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	RoleTitle       string    `json:"role_title"`
	ExperienceLevel string    `json:"experience_level"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type PersonnelSkillResponse struct {
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	Category         string    `json:"category"`
	Description      string    `json:"description,omitempty"`
	ProficiencyLevel int       `json:"proficiency_level"`
}

type UtilizationResponse struct {
	PersonnelID uuid.UUID `json:"personnel_id"`
	Utilization int       `json:"utilization_percentage"`
	Status      string    `json:"status"`
}
