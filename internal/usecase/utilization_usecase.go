package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/domain/schedule"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/repository"
)

type UtilizationSummary struct {
	Utilization int
	Status      personnel.Status
}

type UtilizationUsecase interface {
	Status(ctx context.Context, personnelID uuid.UUID) (UtilizationSummary, error)
}

type Utilization struct {
	assignments repository.AssignmentRepository
	personnel   repository.PersonnelRepository
	today       func() date.Date
}

func NewUtilizationUsecase(assignments repository.AssignmentRepository, people repository.PersonnelRepository) *Utilization {
	return &Utilization{assignments: assignments, personnel: people, today: date.Today}
}

// Status computes the person's rolling 90-day utilization without persisting
// anything. The persisting variant runs inside assignment mutations.
func (u *Utilization) Status(ctx context.Context, personnelID uuid.UUID) (UtilizationSummary, error) {
	if personnelID == uuid.Nil {
		return UtilizationSummary{}, ErrPersonnelNotFound
	}
	if _, err := u.personnel.GetByID(ctx, personnelID); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return UtilizationSummary{}, ErrPersonnelNotFound
		}
		return UtilizationSummary{}, ErrInternal
	}

	sum, err := computeUtilization(ctx, u.assignments, u.today(), personnelID)
	if err != nil {
		return UtilizationSummary{}, ErrInternal
	}
	return sum, nil
}

// computeUtilization reads the person's assignments intersecting the 90-day
// window and derives the utilization percentage and status.
func computeUtilization(ctx context.Context, ar repository.AssignmentRepository, asOf date.Date, personnelID uuid.UUID) (UtilizationSummary, error) {
	items, err := ar.ListIntersectingByPersonnel(ctx, personnelID, asOf, asOf.AddDays(schedule.WindowDays))
	if err != nil {
		return UtilizationSummary{}, err
	}

	spans := make([]schedule.Span, 0, len(items))
	for _, a := range items {
		spans = append(spans, a.Span())
	}

	pct := schedule.UtilizationPercent(asOf, spans)
	return UtilizationSummary{
		Utilization: pct,
		Status:      personnel.StatusForUtilization(pct),
	}, nil
}

// recomputeAndPersist is the status side effect of every assignment
// mutation. It overwrites the stored status unconditionally, including a
// manually set On Leave. Callers run it inside the same transaction as the
// mutation so the status is never derived from a half-committed ledger.
func recomputeAndPersist(ctx context.Context, ar repository.AssignmentRepository, pr repository.PersonnelRepository, asOf date.Date, personnelID uuid.UUID) (UtilizationSummary, error) {
	sum, err := computeUtilization(ctx, ar, asOf, personnelID)
	if err != nil {
		return UtilizationSummary{}, err
	}
	if err := pr.UpdateStatus(ctx, personnelID, sum.Status); err != nil {
		return UtilizationSummary{}, err
	}
	return sum, nil
}
