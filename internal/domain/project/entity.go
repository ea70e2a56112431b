package project

import (
	"github.com/google/uuid"

	"resource-hub/internal/pkg/date"
)

type Status string

const (
	StatusPlanning  Status = "Planning"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanning, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Project dates are optional; when both are present start must not be after
// end. Changing them rewrites every assignment of the project to the new
// range.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartDate   *date.Date
	EndDate     *date.Date
	Status      Status
}

func (p Project) HasDates() bool {
	return p.StartDate != nil && p.EndDate != nil
}

// Requirement is one entry of a project's minimum-proficiency requirement
// set.
type Requirement struct {
	ProjectID           uuid.UUID
	SkillID             uuid.UUID
	SkillName           string
	MinProficiencyLevel int
}
