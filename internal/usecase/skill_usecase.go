package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"resource-hub/internal/domain/skill"
	"resource-hub/internal/repository"
)

type SkillItem struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
}

type SkillInput struct {
	Name        string
	Category    string
	Description string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, in SkillInput) (SkillItem, error)
	UpdateSkill(ctx context.Context, id uuid.UUID, in SkillInput) error
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

type Skill struct {
	repo  repository.SkillRepository
	cache MatchingCache
}

func NewSkillUsecase(repo repository.SkillRepository, cache MatchingCache) *Skill {
	return &Skill{repo: repo, cache: cache}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toSkillItem(it))
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, in SkillInput) (SkillItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}

	s := skill.Skill{
		ID:          uuid.New(),
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}
	if err := u.repo.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrDuplicateSkillName) {
			return SkillItem{}, ErrSkillNameTaken
		}
		return SkillItem{}, ErrInternal
	}
	return toSkillItem(s), nil
}

func (u *Skill) UpdateSkill(ctx context.Context, id uuid.UUID, in SkillInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrInvalidInput
	}

	err := u.repo.Update(ctx, skill.Skill{
		ID:          id,
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSkillNotFound):
			return ErrSkillNotFound
		case errors.Is(err, repository.ErrDuplicateSkillName):
			return ErrSkillNameTaken
		}
		return ErrInternal
	}

	// Cached matching results carry the skill name inside each candidate's
	// requirement breakdown.
	u.invalidateMatching(ctx)
	return nil
}

// DeleteSkill removes the skill from the catalog; the database cascades it
// out of every person profile and project requirement set, so cached
// matching results are stale across the board.
func (u *Skill) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	u.invalidateMatching(ctx)
	return nil
}

func (u *Skill) invalidateMatching(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, matchingCachePattern)
}

func toSkillItem(s skill.Skill) SkillItem {
	return SkillItem{ID: s.ID, Name: s.Name, Category: s.Category, Description: s.Description}
}
