package matching

import (
	"testing"

	"github.com/google/uuid"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		pct  int
		want UtilizationLevel
	}{
		{0, LevelLow},
		{49, LevelLow},
		{50, LevelMedium},
		{74, LevelMedium},
		{75, LevelHigh},
		{89, LevelHigh},
		{90, LevelCritical},
		{100, LevelCritical},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.pct); got != tc.want {
			t.Errorf("LevelFor(%d): expected %s, got %s", tc.pct, tc.want, got)
		}
	}
}

func TestWarning(t *testing.T) {
	if Warning(74) {
		t.Fatalf("expected no warning at 74")
	}
	if !Warning(75) {
		t.Fatalf("expected warning at 75")
	}
}

func TestRankScoring(t *testing.T) {
	goID := uuid.New()
	sqlID := uuid.New()
	k8sID := uuid.New()

	reqs := []Requirement{
		{SkillID: goID, MinProficiencyLevel: 3},
		{SkillID: sqlID, MinProficiencyLevel: 2},
		{SkillID: k8sID, MinProficiencyLevel: 2},
	}

	full := Candidate{
		PersonnelID:   uuid.New(),
		Proficiencies: map[uuid.UUID]int{goID: 4, sqlID: 3, k8sID: 2},
	}
	partial := Candidate{
		PersonnelID:   uuid.New(),
		Proficiencies: map[uuid.UUID]int{goID: 3, sqlID: 1, k8sID: 3},
	}
	none := Candidate{
		PersonnelID:   uuid.New(),
		Proficiencies: map[uuid.UUID]int{},
	}

	ranked := Rank(reqs, []Candidate{none, partial, full})
	if len(ranked) != 3 {
		t.Fatalf("expected 3 scored, got %d", len(ranked))
	}

	if ranked[0].PersonnelID != full.PersonnelID || ranked[0].MatchScore != 100 {
		t.Fatalf("expected full match first with 100, got %+v", ranked[0])
	}
	if ranked[1].PersonnelID != partial.PersonnelID || ranked[1].MatchScore != 67 {
		t.Fatalf("expected partial match with 67, got %+v", ranked[1])
	}
	if ranked[2].PersonnelID != none.PersonnelID || ranked[2].MatchScore != 0 {
		t.Fatalf("expected zero match last, got %+v", ranked[2])
	}

	if ranked[0].MatchedSkills != 3 || ranked[0].TotalRequiredSkills != 3 {
		t.Fatalf("unexpected counts: %+v", ranked[0])
	}
	if ranked[1].MatchedSkills != 2 {
		t.Fatalf("expected 2 matched skills, got %d", ranked[1].MatchedSkills)
	}
}

func TestRankProficiencyBelowMinimumDoesNotCount(t *testing.T) {
	skill := uuid.New()
	reqs := []Requirement{{SkillID: skill, MinProficiencyLevel: 3}}
	c := Candidate{PersonnelID: uuid.New(), Proficiencies: map[uuid.UUID]int{skill: 2}}

	ranked := Rank(reqs, []Candidate{c})
	if ranked[0].MatchScore != 0 || ranked[0].MatchedSkills != 0 {
		t.Fatalf("expected zero score below minimum, got %+v", ranked[0])
	}
}

func TestRankNoRequirementsScoresZero(t *testing.T) {
	c := Candidate{PersonnelID: uuid.New(), Proficiencies: map[uuid.UUID]int{uuid.New(): 4}}
	ranked := Rank(nil, []Candidate{c})
	if ranked[0].MatchScore != 0 || ranked[0].TotalRequiredSkills != 0 {
		t.Fatalf("expected zero score with no requirements, got %+v", ranked[0])
	}
}

func TestRankStableOnTies(t *testing.T) {
	skill := uuid.New()
	reqs := []Requirement{{SkillID: skill, MinProficiencyLevel: 2}}

	first := Candidate{PersonnelID: uuid.New(), Proficiencies: map[uuid.UUID]int{skill: 2}}
	second := Candidate{PersonnelID: uuid.New(), Proficiencies: map[uuid.UUID]int{skill: 4}}

	ranked := Rank(reqs, []Candidate{first, second})
	if ranked[0].PersonnelID != first.PersonnelID {
		t.Fatalf("expected input order preserved on equal scores")
	}
}

func TestRankCarriesUtilizationFlags(t *testing.T) {
	c := Candidate{
		PersonnelID:       uuid.New(),
		Utilization:       92,
		AssignedToProject: true,
		DateConflict:      true,
	}
	ranked := Rank(nil, []Candidate{c})
	got := ranked[0]
	if got.Utilization != 92 || got.UtilizationLevel != LevelCritical || !got.UtilizationWarning {
		t.Fatalf("unexpected utilization fields: %+v", got)
	}
	if !got.AssignedToProject || !got.DateConflict {
		t.Fatalf("expected flags carried through")
	}
}
