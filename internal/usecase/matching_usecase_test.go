package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"resource-hub/internal/domain/assignment"
	"resource-hub/internal/domain/matching"
	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/domain/project"
	"resource-hub/internal/pkg/date"
)

type matchingFixture struct {
	uc          *Matching
	proj        project.Project
	people      *fakePersonnelRepo
	skills      *fakePersonnelSkillRepo
	reqs        *fakeRequirementRepo
	assignments *fakeAssignmentRepo
	cache       *fakeCache
}

func newMatchingFixture(proj project.Project, people ...personnel.Person) *matchingFixture {
	f := &matchingFixture{
		proj:        proj,
		people:      newFakePersonnelRepo(people...),
		skills:      &fakePersonnelSkillRepo{},
		reqs:        &fakeRequirementRepo{},
		assignments: &fakeAssignmentRepo{},
		cache:       newFakeCache(),
	}
	f.uc = NewMatchingUsecase(newFakeProjectRepo(proj), f.reqs, f.people, f.skills, f.assignments, f.cache)
	f.uc.today = func() date.Date { return testToday }
	return f
}

func TestMatchCandidatesRanksAndFlags(t *testing.T) {
	goID := uuid.New()
	sqlID := uuid.New()

	strong := personnel.Person{ID: uuid.New(), Name: "Strong", Status: personnel.StatusAvailable}
	weak := personnel.Person{ID: uuid.New(), Name: "Weak", Status: personnel.StatusAvailable}

	proj := testProject(testToday.AddDays(10), testToday.AddDays(40))
	f := newMatchingFixture(proj, strong, weak)

	f.reqs.reqs = []project.Requirement{
		{ProjectID: proj.ID, SkillID: goID, SkillName: "Go", MinProficiencyLevel: 3},
		{ProjectID: proj.ID, SkillID: sqlID, SkillName: "PostgreSQL", MinProficiencyLevel: 2},
	}
	f.skills.skills = []personnel.Skill{
		{PersonnelID: strong.ID, SkillID: goID, SkillName: "Go", ProficiencyLevel: 4},
		{PersonnelID: strong.ID, SkillID: sqlID, SkillName: "PostgreSQL", ProficiencyLevel: 3},
		{PersonnelID: weak.ID, SkillID: goID, SkillName: "Go", ProficiencyLevel: 2},
	}
	// Strong is already on this project; weak has a conflicting assignment
	// elsewhere inside the project's date range.
	f.assignments.assignments = []assignment.Assignment{
		{ID: uuid.New(), ProjectID: proj.ID, PersonnelID: strong.ID, StartDate: testToday.AddDays(10), EndDate: testToday.AddDays(40)},
		{ID: uuid.New(), ProjectID: uuid.New(), PersonnelID: weak.ID, StartDate: testToday.AddDays(20), EndDate: testToday.AddDays(30)},
	}

	res, err := f.uc.MatchCandidates(context.Background(), f.proj.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(res.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(res.Requirements))
	}
	if len(res.Personnel) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Personnel))
	}

	top := res.Personnel[0]
	if top.PersonnelID != strong.ID || top.MatchScore != 100 {
		t.Fatalf("expected strong first with 100, got %+v", top)
	}
	if !top.AssignedToProject {
		t.Fatalf("expected assigned flag on strong")
	}
	if top.DateConflict {
		t.Fatalf("same-project assignment must not count as conflict")
	}
	// 31 of 90 days assigned rounds to 34.
	if top.Utilization != 34 {
		t.Fatalf("expected 34%% utilization, got %d", top.Utilization)
	}
	if top.UtilizationLevel != matching.LevelLow || top.UtilizationWarning {
		t.Fatalf("unexpected utilization banding: %+v", top)
	}

	second := res.Personnel[1]
	if second.PersonnelID != weak.ID || second.MatchScore != 0 {
		t.Fatalf("expected weak second with 0, got %+v", second)
	}
	if second.AssignedToProject {
		t.Fatalf("weak is not on the project")
	}
	if !second.DateConflict {
		t.Fatalf("expected conflict flag for overlapping other-project assignment")
	}
	if len(second.Skills) != 1 || second.Skills[0].SkillName != "Go" {
		t.Fatalf("unexpected skill list: %+v", second.Skills)
	}
}

func TestMatchCandidatesNoDatesMeansNoConflicts(t *testing.T) {
	person := testPerson()
	proj := project.Project{ID: uuid.New(), Name: "Undated", Status: project.StatusPlanning}
	f := newMatchingFixture(proj, person)

	f.assignments.assignments = []assignment.Assignment{
		{ID: uuid.New(), ProjectID: uuid.New(), PersonnelID: person.ID, StartDate: testToday, EndDate: testToday.AddDays(30)},
	}

	res, err := f.uc.MatchCandidates(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Personnel[0].DateConflict {
		t.Fatalf("expected no conflict when the project has no dates")
	}
}

func TestMatchCandidatesServedFromCache(t *testing.T) {
	person := testPerson()
	proj := testProject(testToday, testToday.AddDays(30))
	f := newMatchingFixture(proj, person)

	first, err := f.uc.MatchCandidates(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Mutate the underlying data; the cached result must win.
	f.people.people = map[uuid.UUID]personnel.Person{}

	second, err := f.uc.MatchCandidates(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second.Personnel) != len(first.Personnel) {
		t.Fatalf("expected cached candidate list, got %d", len(second.Personnel))
	}
}

func TestMatchCandidatesFreshAfterPersonnelCreate(t *testing.T) {
	proj := testProject(testToday, testToday.AddDays(30))
	f := newMatchingFixture(proj, testPerson())

	first, err := f.uc.MatchCandidates(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first.Personnel) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(first.Personnel))
	}

	// Creating a person through the personnel usecase, sharing the same
	// cache, must not leave the cached 1-candidate list in place.
	people := NewPersonnelUsecase(&fakeDB{}, f.people, f.skills, f.cache)
	newcomer, err := people.Create(context.Background(), CreatePersonnelInput{Name: "New Hire", Email: "new@example.com"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second, err := f.uc.MatchCandidates(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second.Personnel) != 2 {
		t.Fatalf("expected newcomer in candidate list, got %d candidates", len(second.Personnel))
	}
	found := false
	for _, c := range second.Personnel {
		if c.PersonnelID == newcomer.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("newcomer missing from candidate list")
	}
}

func TestMatchCandidatesUnknownProject(t *testing.T) {
	f := newMatchingFixture(testProject(testToday, testToday.AddDays(10)))
	_, err := f.uc.MatchCandidates(context.Background(), uuid.New())
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
