package matching

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

type Requirement struct {
	SkillID             uuid.UUID
	SkillName           string
	MinProficiencyLevel int
}

// Candidate is one person considered for a project. Proficiencies maps skill
// id to the person's level; a missing entry counts as level 0 and never
// satisfies a requirement.
type Candidate struct {
	PersonnelID       uuid.UUID
	Proficiencies     map[uuid.UUID]int
	Utilization       int
	AssignedToProject bool
	DateConflict      bool
}

type UtilizationLevel string

const (
	LevelLow      UtilizationLevel = "low"
	LevelMedium   UtilizationLevel = "medium"
	LevelHigh     UtilizationLevel = "high"
	LevelCritical UtilizationLevel = "critical"
)

// LevelFor bands a utilization percentage for display. The bands are
// intentionally different from the status thresholds used when persisting
// Person.status.
func LevelFor(pct int) UtilizationLevel {
	switch {
	case pct >= 90:
		return LevelCritical
	case pct >= 75:
		return LevelHigh
	case pct >= 50:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Warning is raised for the high and critical bands.
func Warning(pct int) bool {
	return pct >= 75
}

type Scored struct {
	PersonnelID         uuid.UUID
	MatchScore          int
	MatchedSkills       int
	TotalRequiredSkills int
	Utilization         int
	UtilizationLevel    UtilizationLevel
	UtilizationWarning  bool
	AssignedToProject   bool
	DateConflict        bool
}

// Rank scores every candidate against the requirement set and returns them
// ordered by descending match score. The sort is stable: candidates with
// equal scores keep their input order. A project with no requirements scores
// every candidate 0 — absence of requirements is not vacuously satisfied.
func Rank(reqs []Requirement, candidates []Candidate) []Scored {
	out := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, score(reqs, c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

func score(reqs []Requirement, c Candidate) Scored {
	matched := 0
	for _, r := range reqs {
		if c.Proficiencies[r.SkillID] >= r.MinProficiencyLevel {
			matched++
		}
	}

	matchScore := 0
	if len(reqs) > 0 {
		matchScore = int(math.Round(float64(matched) / float64(len(reqs)) * 100))
	}

	return Scored{
		PersonnelID:         c.PersonnelID,
		MatchScore:          matchScore,
		MatchedSkills:       matched,
		TotalRequiredSkills: len(reqs),
		Utilization:         c.Utilization,
		UtilizationLevel:    LevelFor(c.Utilization),
		UtilizationWarning:  Warning(c.Utilization),
		AssignedToProject:   c.AssignedToProject,
		DateConflict:        c.DateConflict,
	}
}
