package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/project"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/repository"
)

type ProjectItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartDate   *date.Date
	EndDate     *date.Date
	Status      project.Status
}

type ProjectAssignee struct {
	PersonnelID        uuid.UUID
	Name               string
	RoleTitle          string
	CapacityPercentage int
	StartDate          date.Date
	EndDate            date.Date
}

type ProjectDetail struct {
	ProjectItem
	Requirements      []MatchRequirement
	AssignedPersonnel []ProjectAssignee
}

type ProjectInput struct {
	Name        string
	Description string
	StartDate   *date.Date
	EndDate     *date.Date
	Status      string
}

type RequirementInput struct {
	SkillID             uuid.UUID
	MinProficiencyLevel int
}

type ProjectUsecase interface {
	List(ctx context.Context) ([]ProjectItem, error)
	Get(ctx context.Context, id uuid.UUID) (ProjectDetail, error)
	Create(ctx context.Context, in ProjectInput) (ProjectItem, error)
	Update(ctx context.Context, id uuid.UUID, in ProjectInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListRequirements(ctx context.Context, projectID uuid.UUID) ([]MatchRequirement, error)
	ReplaceRequirements(ctx context.Context, projectID uuid.UUID, reqs []RequirementInput) error
	AddRequirements(ctx context.Context, projectID uuid.UUID, reqs []RequirementInput) error
}

type Project struct {
	db           database.DB
	projects     repository.ProjectRepository
	requirements repository.ProjectRequirementRepository
	assignments  repository.AssignmentRepository
	cache        MatchingCache
}

func NewProjectUsecase(
	db database.DB,
	projects repository.ProjectRepository,
	requirements repository.ProjectRequirementRepository,
	assignments repository.AssignmentRepository,
	cache MatchingCache,
) *Project {
	return &Project{
		db:           db,
		projects:     projects,
		requirements: requirements,
		assignments:  assignments,
		cache:        cache,
	}
}

func (u *Project) List(ctx context.Context) ([]ProjectItem, error) {
	items, err := u.projects.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]ProjectItem, 0, len(items))
	for _, p := range items {
		out = append(out, toProjectItem(p))
	}
	return out, nil
}

func (u *Project) Get(ctx context.Context, id uuid.UUID) (ProjectDetail, error) {
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ProjectDetail{}, ErrProjectNotFound
		}
		return ProjectDetail{}, ErrInternal
	}

	reqs, err := u.requirements.ListByProject(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}

	assigned, err := u.assignments.ListByProject(ctx, id)
	if err != nil {
		return ProjectDetail{}, ErrInternal
	}

	detail := ProjectDetail{
		ProjectItem:       toProjectItem(p),
		Requirements:      make([]MatchRequirement, 0, len(reqs)),
		AssignedPersonnel: make([]ProjectAssignee, 0, len(assigned)),
	}
	for _, r := range reqs {
		detail.Requirements = append(detail.Requirements, MatchRequirement{
			SkillID:             r.SkillID,
			SkillName:           r.SkillName,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}
	for _, a := range assigned {
		detail.AssignedPersonnel = append(detail.AssignedPersonnel, ProjectAssignee{
			PersonnelID:        a.PersonnelID,
			Name:               a.PersonnelName,
			RoleTitle:          a.RoleTitle,
			CapacityPercentage: a.CapacityPercentage,
			StartDate:          a.StartDate,
			EndDate:            a.EndDate,
		})
	}
	return detail, nil
}

func (u *Project) Create(ctx context.Context, in ProjectInput) (ProjectItem, error) {
	p, err := projectFromInput(uuid.New(), in)
	if err != nil {
		return ProjectItem{}, err
	}

	if err := u.projects.Create(ctx, p); err != nil {
		return ProjectItem{}, ErrInternal
	}
	return toProjectItem(p), nil
}

// Update rewrites the project and, when its dates changed, forcibly
// overwrites every assignment of the project to the new range. Assignments
// do not keep independently edited ranges across a project date change.
func (u *Project) Update(ctx context.Context, id uuid.UUID, in ProjectInput) error {
	current, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}

	updated, err := projectFromInput(id, in)
	if err != nil {
		return err
	}

	datesChanged := !datePtrEqual(current.StartDate, updated.StartDate) ||
		!datePtrEqual(current.EndDate, updated.EndDate)

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return ErrInternal
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := u.projects.WithTx(tx).Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}

	if datesChanged && updated.HasDates() {
		if err := u.assignments.WithTx(tx).UpdateDatesByProject(ctx, id, *updated.StartDate, *updated.EndDate); err != nil {
			return ErrInternal
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return ErrInternal
	}

	u.invalidateMatching(ctx, datesChanged, id)
	return nil
}

func (u *Project) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return ErrInternal
	}
	u.invalidateMatching(ctx, true, id)
	return nil
}

func (u *Project) ListRequirements(ctx context.Context, projectID uuid.UUID) ([]MatchRequirement, error) {
	if _, err := u.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, ErrInternal
	}

	reqs, err := u.requirements.ListByProject(ctx, projectID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]MatchRequirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, MatchRequirement{
			SkillID:             r.SkillID,
			SkillName:           r.SkillName,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}
	return out, nil
}

// ReplaceRequirements treats the incoming list as the project's whole
// requirement set: transactional delete-all plus insert, no diffing.
func (u *Project) ReplaceRequirements(ctx context.Context, projectID uuid.UUID, reqs []RequirementInput) error {
	entries, err := u.validateRequirements(ctx, projectID, reqs)
	if err != nil {
		return err
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return ErrInternal
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rr := u.requirements.WithTx(tx)
	if err := rr.DeleteByProject(ctx, projectID); err != nil {
		return ErrInternal
	}
	if err := rr.Insert(ctx, entries); err != nil {
		return ErrInternal
	}
	if err := tx.Commit(ctx); err != nil {
		return ErrInternal
	}

	u.invalidateMatching(ctx, false, projectID)
	return nil
}

func (u *Project) AddRequirements(ctx context.Context, projectID uuid.UUID, reqs []RequirementInput) error {
	entries, err := u.validateRequirements(ctx, projectID, reqs)
	if err != nil {
		return err
	}

	if err := u.requirements.Insert(ctx, entries); err != nil {
		return ErrInternal
	}

	u.invalidateMatching(ctx, false, projectID)
	return nil
}

func (u *Project) validateRequirements(ctx context.Context, projectID uuid.UUID, reqs []RequirementInput) ([]project.Requirement, error) {
	if _, err := u.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, ErrInternal
	}

	seen := make(map[uuid.UUID]bool, len(reqs))
	entries := make([]project.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if r.SkillID == uuid.Nil || seen[r.SkillID] {
			return nil, ErrInvalidInput
		}
		if r.MinProficiencyLevel < 1 || r.MinProficiencyLevel > 4 {
			return nil, ErrInvalidProficiency
		}
		seen[r.SkillID] = true
		entries = append(entries, project.Requirement{
			ProjectID:           projectID,
			SkillID:             r.SkillID,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}
	return entries, nil
}

// invalidateMatching drops the project's cached matching result; date
// changes also move assignments and therefore utilization on every other
// project, so those flush the whole namespace.
func (u *Project) invalidateMatching(ctx context.Context, global bool, projectID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if global {
		_ = u.cache.DeleteByPattern(ctx, matchingCachePattern)
		return
	}
	_ = u.cache.Delete(ctx, matchingCacheKey(projectID))
}

func projectFromInput(id uuid.UUID, in ProjectInput) (project.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return project.Project{}, ErrInvalidInput
	}

	status := project.Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = project.StatusPlanning
	}
	if !project.ValidStatus(status) {
		return project.Project{}, ErrInvalidInput
	}

	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return project.Project{}, ErrInvalidDateRange
	}

	return project.Project{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
	}, nil
}

func toProjectItem(p project.Project) ProjectItem {
	return ProjectItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
	}
}

func datePtrEqual(a, b *date.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
