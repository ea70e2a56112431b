package personnel

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "Junior"
	ExperienceMid    ExperienceLevel = "Mid-Level"
	ExperienceSenior ExperienceLevel = "Senior"
)

func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case ExperienceJunior, ExperienceMid, ExperienceSenior:
		return true
	}
	return false
}

type Status string

const (
	StatusAvailable Status = "Available"
	StatusBusy      Status = "Busy"
	StatusCritical  Status = "Critical"
	StatusOnLeave   Status = "On Leave"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusBusy, StatusCritical, StatusOnLeave:
		return true
	}
	return false
}

// StatusForUtilization derives the coarse status persisted on the person
// after every assignment mutation. It never yields On Leave: a manually set
// leave status is overwritten by the next recompute.
func StatusForUtilization(pct int) Status {
	switch {
	case pct >= 80:
		return StatusCritical
	case pct >= 50:
		return StatusBusy
	default:
		return StatusAvailable
	}
}

type Person struct {
	ID              uuid.UUID
	Name            string
	Email           string
	PasswordHash    string
	RoleTitle       string
	ExperienceLevel ExperienceLevel
	Status          Status
	CreatedAt       time.Time
}

// Skill is one entry of a person's proficiency profile.
type Skill struct {
	PersonnelID      uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	Category         string
	Description      string
	ProficiencyLevel int
}

const (
	MinProficiency = 1
	MaxProficiency = 4
)

func ValidProficiency(level int) bool {
	return level >= MinProficiency && level <= MaxProficiency
}
