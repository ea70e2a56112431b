package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"resource-hub/internal/domain/skill"
)

func newSkillFixture(skills ...skill.Skill) (*Skill, *fakeSkillRepo, *fakeCache) {
	repo := newFakeSkillRepo(skills...)
	cache := newFakeCache()
	return NewSkillUsecase(repo, cache), repo, cache
}

func TestAddSkillLeavesMatchingCache(t *testing.T) {
	uc, repo, cache := newSkillFixture()
	cache.entries["matching:some-project"] = []byte(`{}`)

	created, err := uc.AddSkill(context.Background(), SkillInput{Name: " Go ", Category: "Backend"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Name != "Go" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if _, ok := repo.skills[created.ID]; !ok {
		t.Fatalf("expected skill stored")
	}

	// A brand-new skill appears in no profile or requirement set, so cached
	// matching results stay valid.
	if len(cache.deletedPatterns) != 0 || len(cache.entries) != 1 {
		t.Fatalf("adding a skill must not flush the matching cache")
	}

	if _, err := uc.AddSkill(context.Background(), SkillInput{Name: "Go"}); !errors.Is(err, ErrSkillNameTaken) {
		t.Fatalf("expected ErrSkillNameTaken, got %v", err)
	}
	if _, err := uc.AddSkill(context.Background(), SkillInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateSkillInvalidatesMatchingCache(t *testing.T) {
	existing := skill.Skill{ID: uuid.New(), Name: "Go", Category: "Backend"}
	uc, repo, cache := newSkillFixture(existing)
	cache.entries["matching:some-project"] = []byte(`{}`)

	err := uc.UpdateSkill(context.Background(), existing.ID, SkillInput{Name: "Golang", Category: "Backend"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.skills[existing.ID].Name != "Golang" {
		t.Fatalf("expected renamed skill, got %+v", repo.skills[existing.ID])
	}

	// Cached matching results embed the skill name per requirement; a rename
	// must flush them.
	if len(cache.deletedPatterns) == 0 || len(cache.entries) != 0 {
		t.Fatalf("expected matching cache flush after rename")
	}
}

func TestUpdateSkillErrors(t *testing.T) {
	a := skill.Skill{ID: uuid.New(), Name: "Go"}
	b := skill.Skill{ID: uuid.New(), Name: "PostgreSQL"}
	uc, _, cache := newSkillFixture(a, b)

	if err := uc.UpdateSkill(context.Background(), uuid.New(), SkillInput{Name: "X"}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
	if err := uc.UpdateSkill(context.Background(), b.ID, SkillInput{Name: "Go"}); !errors.Is(err, ErrSkillNameTaken) {
		t.Fatalf("expected ErrSkillNameTaken, got %v", err)
	}
	if err := uc.UpdateSkill(context.Background(), a.ID, SkillInput{Name: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(cache.deletedPatterns) != 0 {
		t.Fatalf("failed updates must not flush the cache")
	}
}

func TestDeleteSkillInvalidatesMatchingCache(t *testing.T) {
	existing := skill.Skill{ID: uuid.New(), Name: "Go"}
	uc, repo, cache := newSkillFixture(existing)
	cache.entries["matching:some-project"] = []byte(`{}`)

	if err := uc.DeleteSkill(context.Background(), existing.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := repo.skills[existing.ID]; ok {
		t.Fatalf("expected skill removed")
	}
	if len(cache.deletedPatterns) == 0 {
		t.Fatalf("expected matching cache flush after delete")
	}

	if err := uc.DeleteSkill(context.Background(), existing.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
