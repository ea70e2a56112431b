package assignment

import (
	"time"

	"github.com/google/uuid"

	"resource-hub/internal/domain/schedule"
	"resource-hub/internal/pkg/date"
)

const (
	MinCapacity     = 0
	MaxCapacity     = 100
	DefaultCapacity = 100
)

func ValidCapacity(pct int) bool {
	return pct >= MinCapacity && pct <= MaxCapacity
}

// Assignment ties a person to a project for an inclusive date range. At most
// one row exists per (project, personnel) pair; assigning an already
// assigned pair toggles the row away instead of duplicating it.
type Assignment struct {
	ID                 uuid.UUID
	ProjectID          uuid.UUID
	PersonnelID        uuid.UUID
	CapacityPercentage int
	StartDate          date.Date
	EndDate            date.Date
	AssignedAt         time.Time
}

func (a Assignment) Span() schedule.Span {
	return schedule.NewSpan(a.StartDate, a.EndDate)
}
