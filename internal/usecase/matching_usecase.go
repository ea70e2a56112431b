package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"resource-hub/internal/domain/matching"
	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/domain/schedule"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/repository"
)

type MatchRequirement struct {
	SkillID             uuid.UUID `json:"skill_id"`
	SkillName           string    `json:"skill_name"`
	MinProficiencyLevel int       `json:"min_proficiency_level"`
}

type MatchCandidateSkill struct {
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	ProficiencyLevel int       `json:"proficiency_level"`
}

type MatchCandidate struct {
	PersonnelID         uuid.UUID                 `json:"personnel_id"`
	Name                string                    `json:"name"`
	Email               string                    `json:"email"`
	RoleTitle           string                    `json:"role_title"`
	ExperienceLevel     personnel.ExperienceLevel `json:"experience_level"`
	Status              personnel.Status          `json:"status"`
	Skills              []MatchCandidateSkill     `json:"skills"`
	MatchScore          int                       `json:"match_score"`
	MatchedSkills       int                       `json:"matched_skills"`
	TotalRequiredSkills int                       `json:"total_required_skills"`
	Utilization         int                       `json:"utilization_percentage"`
	UtilizationLevel    matching.UtilizationLevel `json:"utilization_level"`
	UtilizationWarning  bool                      `json:"utilization_warning"`
	AssignedToProject   bool                      `json:"is_assigned_to_project"`
	DateConflict        bool                      `json:"has_date_overlap"`
}

type MatchResult struct {
	Requirements []MatchRequirement `json:"requirements"`
	Personnel    []MatchCandidate   `json:"personnel"`
}

type MatchingUsecase interface {
	MatchCandidates(ctx context.Context, projectID uuid.UUID) (MatchResult, error)
}

// Matching assembles the candidate ranking for a project: skill fit from the
// requirement set and proficiency profiles, utilization from the assignment
// ledger, and the assigned/conflict flags against the project's own dates.
type Matching struct {
	projects        repository.ProjectRepository
	requirements    repository.ProjectRequirementRepository
	personnel       repository.PersonnelRepository
	personnelSkills repository.PersonnelSkillRepository
	assignments     repository.AssignmentRepository
	cache           MatchingCache
	today           func() date.Date
}

func NewMatchingUsecase(
	projects repository.ProjectRepository,
	requirements repository.ProjectRequirementRepository,
	people repository.PersonnelRepository,
	personnelSkills repository.PersonnelSkillRepository,
	assignments repository.AssignmentRepository,
	cache MatchingCache,
) *Matching {
	return &Matching{
		projects:        projects,
		requirements:    requirements,
		personnel:       people,
		personnelSkills: personnelSkills,
		assignments:     assignments,
		cache:           cache,
		today:           date.Today,
	}
}

func (u *Matching) MatchCandidates(ctx context.Context, projectID uuid.UUID) (MatchResult, error) {
	if projectID == uuid.Nil {
		return MatchResult{}, ErrProjectNotFound
	}

	cacheKey := matchingCacheKey(projectID)
	if u.cache != nil {
		var cached MatchResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	proj, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return MatchResult{}, ErrProjectNotFound
		}
		return MatchResult{}, ErrInternal
	}

	reqs, err := u.requirements.ListByProject(ctx, projectID)
	if err != nil {
		return MatchResult{}, ErrInternal
	}

	people, err := u.personnel.List(ctx)
	if err != nil {
		return MatchResult{}, ErrInternal
	}

	profiles, err := u.personnelSkills.ListAll(ctx)
	if err != nil {
		return MatchResult{}, ErrInternal
	}
	profileByPerson := make(map[uuid.UUID][]personnel.Skill)
	for _, p := range profiles {
		profileByPerson[p.PersonnelID] = append(profileByPerson[p.PersonnelID], p)
	}

	asOf := u.today()
	windowAssignments, err := u.assignments.ListIntersecting(ctx, asOf, asOf.AddDays(schedule.WindowDays))
	if err != nil {
		return MatchResult{}, ErrInternal
	}
	spansByPerson := make(map[uuid.UUID][]schedule.Span)
	for _, a := range windowAssignments {
		spansByPerson[a.PersonnelID] = append(spansByPerson[a.PersonnelID], a.Span())
	}

	assignedSet, err := u.assignments.PersonnelAssignedToProject(ctx, projectID)
	if err != nil {
		return MatchResult{}, ErrInternal
	}

	// Conflicts are judged against the project's own date range, not the
	// utilization window.
	conflictSet := make(map[uuid.UUID]bool)
	if proj.HasDates() {
		inRange, err := u.assignments.ListIntersecting(ctx, *proj.StartDate, *proj.EndDate)
		if err != nil {
			return MatchResult{}, ErrInternal
		}
		for _, a := range inRange {
			if a.ProjectID != projectID {
				conflictSet[a.PersonnelID] = true
			}
		}
	}

	engineReqs := make([]matching.Requirement, 0, len(reqs))
	for _, r := range reqs {
		engineReqs = append(engineReqs, matching.Requirement{
			SkillID:             r.SkillID,
			SkillName:           r.SkillName,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}

	candidates := make([]matching.Candidate, 0, len(people))
	for _, p := range people {
		prof := make(map[uuid.UUID]int, len(profileByPerson[p.ID]))
		for _, s := range profileByPerson[p.ID] {
			prof[s.SkillID] = s.ProficiencyLevel
		}
		candidates = append(candidates, matching.Candidate{
			PersonnelID:       p.ID,
			Proficiencies:     prof,
			Utilization:       schedule.UtilizationPercent(asOf, spansByPerson[p.ID]),
			AssignedToProject: assignedSet[p.ID],
			DateConflict:      conflictSet[p.ID],
		})
	}

	ranked := matching.Rank(engineReqs, candidates)

	personByID := make(map[uuid.UUID]personnel.Person, len(people))
	for _, p := range people {
		personByID[p.ID] = p
	}

	res := MatchResult{
		Requirements: make([]MatchRequirement, 0, len(reqs)),
		Personnel:    make([]MatchCandidate, 0, len(ranked)),
	}
	for _, r := range reqs {
		res.Requirements = append(res.Requirements, MatchRequirement{
			SkillID:             r.SkillID,
			SkillName:           r.SkillName,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}
	for _, s := range ranked {
		p := personByID[s.PersonnelID]
		skills := make([]MatchCandidateSkill, 0, len(profileByPerson[p.ID]))
		for _, ps := range profileByPerson[p.ID] {
			skills = append(skills, MatchCandidateSkill{
				SkillID:          ps.SkillID,
				SkillName:        ps.SkillName,
				ProficiencyLevel: ps.ProficiencyLevel,
			})
		}
		res.Personnel = append(res.Personnel, MatchCandidate{
			PersonnelID:         p.ID,
			Name:                p.Name,
			Email:               p.Email,
			RoleTitle:           p.RoleTitle,
			ExperienceLevel:     p.ExperienceLevel,
			Status:              p.Status,
			Skills:              skills,
			MatchScore:          s.MatchScore,
			MatchedSkills:       s.MatchedSkills,
			TotalRequiredSkills: s.TotalRequiredSkills,
			Utilization:         s.Utilization,
			UtilizationLevel:    s.UtilizationLevel,
			UtilizationWarning:  s.UtilizationWarning,
			AssignedToProject:   s.AssignedToProject,
			DateConflict:        s.DateConflict,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, res, 0)
	}

	return res, nil
}
