package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/assignment"
	"resource-hub/internal/domain/project"
	"resource-hub/internal/domain/schedule"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/repository"
)

type AssignmentOutcome string

const (
	OutcomeAssigned AssignmentOutcome = "assigned"
	OutcomeReleased AssignmentOutcome = "released"
)

type ToggleAssignmentInput struct {
	CapacityPercentage *int
	StartDate          *date.Date
	EndDate            *date.Date
}

type ToggleAssignmentResult struct {
	Outcome     AssignmentOutcome
	Utilization int
	Status      string
}

type AssignmentUsecase interface {
	Toggle(ctx context.Context, projectID, personnelID uuid.UUID, in ToggleAssignmentInput) (ToggleAssignmentResult, error)
	Release(ctx context.Context, projectID, personnelID uuid.UUID) (UtilizationSummary, error)
}

// Assignment coordinates assignment state changes: the toggle state machine,
// the overlap guard, and the utilization/status recompute, all against a
// single transaction per mutation.
type Assignment struct {
	db          database.DB
	assignments repository.AssignmentRepository
	personnel   repository.PersonnelRepository
	projects    repository.ProjectRepository
	cache       MatchingCache
	today       func() date.Date
}

func NewAssignmentUsecase(
	db database.DB,
	assignments repository.AssignmentRepository,
	people repository.PersonnelRepository,
	projects repository.ProjectRepository,
	cache MatchingCache,
) *Assignment {
	return &Assignment{
		db:          db,
		assignments: assignments,
		personnel:   people,
		projects:    projects,
		cache:       cache,
		today:       date.Today,
	}
}

// Toggle assigns the person to the project, or releases an existing
// assignment when the pair is already assigned. The caller learns which via
// the tagged Outcome rather than by parsing a message.
func (u *Assignment) Toggle(ctx context.Context, projectID, personnelID uuid.UUID, in ToggleAssignmentInput) (ToggleAssignmentResult, error) {
	if projectID == uuid.Nil {
		return ToggleAssignmentResult{}, ErrProjectNotFound
	}
	if personnelID == uuid.Nil {
		return ToggleAssignmentResult{}, ErrPersonnelNotFound
	}

	if _, err := u.personnel.GetByID(ctx, personnelID); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ToggleAssignmentResult{}, ErrPersonnelNotFound
		}
		return ToggleAssignmentResult{}, ErrInternal
	}

	_, err := u.assignments.FindByProjectAndPersonnel(ctx, projectID, personnelID)
	switch {
	case err == nil:
		sum, err := u.deleteAndRecompute(ctx, projectID, personnelID)
		if err != nil {
			return ToggleAssignmentResult{}, err
		}
		return released(sum), nil
	case !errors.Is(err, repository.ErrAssignmentNotFound):
		return ToggleAssignmentResult{}, ErrInternal
	}

	proj, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ToggleAssignmentResult{}, ErrProjectNotFound
		}
		return ToggleAssignmentResult{}, ErrInternal
	}

	span, err := resolveAssignmentSpan(in, proj, u.today())
	if err != nil {
		return ToggleAssignmentResult{}, err
	}

	capacity := assignment.DefaultCapacity
	if in.CapacityPercentage != nil {
		capacity = *in.CapacityPercentage
		if !assignment.ValidCapacity(capacity) {
			return ToggleAssignmentResult{}, ErrInvalidCapacity
		}
	}

	conflict, err := u.assignments.ExistsConflict(ctx, personnelID, projectID, span.Start, span.End)
	if err != nil {
		return ToggleAssignmentResult{}, ErrInternal
	}
	if conflict {
		return ToggleAssignmentResult{}, ErrDateOverlap
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return ToggleAssignmentResult{}, ErrInternal
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ar := u.assignments.WithTx(tx)
	pr := u.personnel.WithTx(tx)

	createErr := ar.Create(ctx, assignment.Assignment{
		ID:                 uuid.New(),
		ProjectID:          projectID,
		PersonnelID:        personnelID,
		CapacityPercentage: capacity,
		StartDate:          span.Start,
		EndDate:            span.End,
	})
	if createErr != nil {
		if errors.Is(createErr, repository.ErrDuplicateAssignment) {
			// Lost a concurrent toggle race: the pair is already assigned,
			// which for a toggle means release.
			_ = tx.Rollback(ctx)
			sum, err := u.deleteAndRecompute(ctx, projectID, personnelID)
			if err != nil {
				return ToggleAssignmentResult{}, err
			}
			return released(sum), nil
		}
		return ToggleAssignmentResult{}, ErrInternal
	}

	sum, err := recomputeAndPersist(ctx, ar, pr, u.today(), personnelID)
	if err != nil {
		return ToggleAssignmentResult{}, ErrInternal
	}

	if err := tx.Commit(ctx); err != nil {
		return ToggleAssignmentResult{}, ErrInternal
	}

	u.invalidateMatching(ctx)

	return ToggleAssignmentResult{
		Outcome:     OutcomeAssigned,
		Utilization: sum.Utilization,
		Status:      string(sum.Status),
	}, nil
}

// Release removes the assignment if present and recomputes the person's
// status either way. Releasing a pair that is not assigned is not an error.
func (u *Assignment) Release(ctx context.Context, projectID, personnelID uuid.UUID) (UtilizationSummary, error) {
	if personnelID == uuid.Nil {
		return UtilizationSummary{}, ErrPersonnelNotFound
	}
	if _, err := u.personnel.GetByID(ctx, personnelID); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return UtilizationSummary{}, ErrPersonnelNotFound
		}
		return UtilizationSummary{}, ErrInternal
	}

	return u.deleteAndRecompute(ctx, projectID, personnelID)
}

func (u *Assignment) deleteAndRecompute(ctx context.Context, projectID, personnelID uuid.UUID) (UtilizationSummary, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return UtilizationSummary{}, ErrInternal
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ar := u.assignments.WithTx(tx)
	pr := u.personnel.WithTx(tx)

	if _, err := ar.DeleteByProjectAndPersonnel(ctx, projectID, personnelID); err != nil {
		return UtilizationSummary{}, ErrInternal
	}

	sum, err := recomputeAndPersist(ctx, ar, pr, u.today(), personnelID)
	if err != nil {
		return UtilizationSummary{}, ErrInternal
	}

	if err := tx.Commit(ctx); err != nil {
		return UtilizationSummary{}, ErrInternal
	}

	u.invalidateMatching(ctx)
	return sum, nil
}

func (u *Assignment) invalidateMatching(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, matchingCachePattern)
}

// resolveAssignmentSpan picks the effective dates: request overrides, then
// the project's own dates, then today through today+7.
func resolveAssignmentSpan(in ToggleAssignmentInput, proj project.Project, today date.Date) (schedule.Span, error) {
	start := today
	switch {
	case in.StartDate != nil && !in.StartDate.IsZero():
		start = *in.StartDate
	case proj.StartDate != nil:
		start = *proj.StartDate
	}

	end := today.AddDays(7)
	switch {
	case in.EndDate != nil && !in.EndDate.IsZero():
		end = *in.EndDate
	case proj.EndDate != nil:
		end = *proj.EndDate
	}

	span := schedule.NewSpan(start, end)
	if !span.Valid() {
		return schedule.Span{}, ErrInvalidDateRange
	}
	return span, nil
}

func released(sum UtilizationSummary) ToggleAssignmentResult {
	return ToggleAssignmentResult{
		Outcome:     OutcomeReleased,
		Utilization: sum.Utilization,
		Status:      string(sum.Status),
	}
}
