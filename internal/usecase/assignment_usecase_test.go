package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"resource-hub/internal/domain/assignment"
	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/domain/project"
	"resource-hub/internal/pkg/date"
)

var testToday = date.New(2026, time.June, 1)

func datePtr(d date.Date) *date.Date { return &d }

func newAssignmentFixture(proj project.Project, people ...personnel.Person) (*Assignment, *fakeDB, *fakeAssignmentRepo, *fakePersonnelRepo, *fakeCache) {
	db := &fakeDB{}
	ar := &fakeAssignmentRepo{}
	pr := newFakePersonnelRepo(people...)
	cache := newFakeCache()

	uc := NewAssignmentUsecase(db, ar, pr, newFakeProjectRepo(proj), cache)
	uc.today = func() date.Date { return testToday }
	return uc, db, ar, pr, cache
}

func testPerson() personnel.Person {
	return personnel.Person{
		ID:     uuid.New(),
		Name:   "Ada",
		Email:  "ada@example.com",
		Status: personnel.StatusAvailable,
	}
}

func testProject(start, end date.Date) project.Project {
	return project.Project{
		ID:        uuid.New(),
		Name:      "Platform Rebuild",
		StartDate: datePtr(start),
		EndDate:   datePtr(end),
		Status:    project.StatusActive,
	}
}

func TestToggleAssignsWithProjectDates(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(44))
	uc, db, ar, pr, cache := newAssignmentFixture(proj, person)

	res, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeAssigned {
		t.Fatalf("expected assigned, got %s", res.Outcome)
	}
	if res.Utilization != 50 {
		t.Fatalf("expected 50%% utilization for 45 of 90 days, got %d", res.Utilization)
	}
	if res.Status != string(personnel.StatusBusy) {
		t.Fatalf("expected Busy, got %s", res.Status)
	}

	if len(ar.assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(ar.assignments))
	}
	got := ar.assignments[0]
	if !got.StartDate.Equal(*proj.StartDate) || !got.EndDate.Equal(*proj.EndDate) {
		t.Fatalf("expected project dates, got %s..%s", got.StartDate, got.EndDate)
	}
	if got.CapacityPercentage != assignment.DefaultCapacity {
		t.Fatalf("expected default capacity, got %d", got.CapacityPercentage)
	}

	if pr.people[person.ID].Status != personnel.StatusBusy {
		t.Fatalf("expected persisted status Busy, got %s", pr.people[person.ID].Status)
	}
	if len(db.txs) != 1 || !db.txs[0].committed {
		t.Fatalf("expected one committed transaction")
	}
	if len(cache.deletedPatterns) == 0 {
		t.Fatalf("expected matching cache invalidation")
	}
}

func TestToggleReleasesExistingAssignment(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(30))
	uc, _, ar, pr, _ := newAssignmentFixture(proj, person)

	ar.assignments = []assignment.Assignment{{
		ID:          uuid.New(),
		ProjectID:   proj.ID,
		PersonnelID: person.ID,
		StartDate:   testToday,
		EndDate:     testToday.AddDays(30),
	}}

	res, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeReleased {
		t.Fatalf("expected released, got %s", res.Outcome)
	}
	if len(ar.assignments) != 0 {
		t.Fatalf("expected assignment removed")
	}
	if res.Utilization != 0 || res.Status != string(personnel.StatusAvailable) {
		t.Fatalf("expected 0/Available after release, got %d/%s", res.Utilization, res.Status)
	}
	if pr.people[person.ID].Status != personnel.StatusAvailable {
		t.Fatalf("expected persisted status Available")
	}
}

func TestToggleRejectsOverlappingDates(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(30))
	uc, _, ar, _, _ := newAssignmentFixture(proj, person)

	ar.assignments = []assignment.Assignment{{
		ID:          uuid.New(),
		ProjectID:   uuid.New(),
		PersonnelID: person.ID,
		StartDate:   testToday.AddDays(20),
		EndDate:     testToday.AddDays(60),
	}}

	_, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{})
	if !errors.Is(err, ErrDateOverlap) {
		t.Fatalf("expected ErrDateOverlap, got %v", err)
	}
	if len(ar.assignments) != 1 {
		t.Fatalf("expected no new assignment")
	}
}

func TestToggleDefaultsToOneWeekWithoutDates(t *testing.T) {
	person := testPerson()
	proj := project.Project{ID: uuid.New(), Name: "Undated", Status: project.StatusPlanning}
	uc, _, ar, _, _ := newAssignmentFixture(proj, person)

	res, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeAssigned {
		t.Fatalf("expected assigned")
	}

	got := ar.assignments[0]
	if !got.StartDate.Equal(testToday) || !got.EndDate.Equal(testToday.AddDays(7)) {
		t.Fatalf("expected today..today+7, got %s..%s", got.StartDate, got.EndDate)
	}
	// 8 inclusive days of 90 rounds to 9.
	if res.Utilization != 9 {
		t.Fatalf("expected 9%% utilization, got %d", res.Utilization)
	}
}

func TestToggleRequestDatesOverrideProject(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(80))
	uc, _, ar, _, _ := newAssignmentFixture(proj, person)

	start := testToday.AddDays(10)
	end := testToday.AddDays(19)
	capacity := 60
	res, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{
		CapacityPercentage: &capacity,
		StartDate:          &start,
		EndDate:            &end,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeAssigned {
		t.Fatalf("expected assigned")
	}

	got := ar.assignments[0]
	if !got.StartDate.Equal(start) || !got.EndDate.Equal(end) {
		t.Fatalf("expected request dates, got %s..%s", got.StartDate, got.EndDate)
	}
	if got.CapacityPercentage != 60 {
		t.Fatalf("expected capacity 60, got %d", got.CapacityPercentage)
	}
}

func TestToggleInvalidCapacity(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(30))
	uc, _, _, _, _ := newAssignmentFixture(proj, person)

	capacity := 150
	_, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{CapacityPercentage: &capacity})
	if !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestToggleInvalidDateRange(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(30))
	uc, _, _, _, _ := newAssignmentFixture(proj, person)

	start := testToday.AddDays(10)
	end := testToday.AddDays(5)
	_, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{StartDate: &start, EndDate: &end})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestToggleLostInsertRaceReleases(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(30))
	uc, db, ar, _, _ := newAssignmentFixture(proj, person)

	// Simulate a concurrent toggle winning the insert between the lookup and
	// our create: the unique violation turns this call into a release.
	ar.forceDuplicate = true

	res, err := uc.Toggle(context.Background(), proj.ID, person.ID, ToggleAssignmentInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeReleased {
		t.Fatalf("expected released after losing insert race, got %s", res.Outcome)
	}
	if len(db.txs) != 2 {
		t.Fatalf("expected insert tx plus release tx, got %d", len(db.txs))
	}
	if db.txs[0].committed {
		t.Fatalf("expected first transaction rolled back")
	}
	if !db.txs[1].committed {
		t.Fatalf("expected release transaction committed")
	}
}

func TestToggleUnknownPersonnel(t *testing.T) {
	proj := testProject(testToday, testToday.AddDays(30))
	uc, _, _, _, _ := newAssignmentFixture(proj)

	_, err := uc.Toggle(context.Background(), proj.ID, uuid.New(), ToggleAssignmentInput{})
	if !errors.Is(err, ErrPersonnelNotFound) {
		t.Fatalf("expected ErrPersonnelNotFound, got %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	person := testPerson()
	person.Status = personnel.StatusOnLeave
	proj := testProject(testToday, testToday.AddDays(30))
	uc, _, _, pr, _ := newAssignmentFixture(proj, person)

	sum, err := uc.Release(context.Background(), proj.ID, person.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum.Utilization != 0 {
		t.Fatalf("expected 0 utilization, got %d", sum.Utilization)
	}
	// The recompute overwrites even a manual On Leave.
	if pr.people[person.ID].Status != personnel.StatusAvailable {
		t.Fatalf("expected status recomputed to Available, got %s", pr.people[person.ID].Status)
	}
}
