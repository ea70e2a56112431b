package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resource-hub/internal/database"
	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/repository"
)

type PersonItem struct {
	ID              uuid.UUID
	Name            string
	Email           string
	RoleTitle       string
	ExperienceLevel personnel.ExperienceLevel
	Status          personnel.Status
	CreatedAt       time.Time
}

type PersonSkillItem struct {
	SkillID          uuid.UUID
	SkillName        string
	Category         string
	Description      string
	ProficiencyLevel int
}

type CreatePersonnelInput struct {
	Name            string
	Email           string
	RoleTitle       string
	ExperienceLevel string
	Status          string
}

type UpdatePersonnelInput struct {
	Name            string
	Email           string
	RoleTitle       string
	ExperienceLevel string
	Status          string
}

type SetSkillInput struct {
	SkillID          uuid.UUID
	ProficiencyLevel int
}

type PersonnelUsecase interface {
	List(ctx context.Context) ([]PersonItem, error)
	Create(ctx context.Context, in CreatePersonnelInput) (PersonItem, error)
	Update(ctx context.Context, id uuid.UUID, in UpdatePersonnelInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListSkills(ctx context.Context, id uuid.UUID) ([]PersonSkillItem, error)
	SetSkills(ctx context.Context, id uuid.UUID, skills []SetSkillInput) error
}

type Personnel struct {
	db     database.DB
	people repository.PersonnelRepository
	skills repository.PersonnelSkillRepository
	cache  MatchingCache
}

func NewPersonnelUsecase(db database.DB, people repository.PersonnelRepository, skills repository.PersonnelSkillRepository, cache MatchingCache) *Personnel {
	return &Personnel{db: db, people: people, skills: skills, cache: cache}
}

func (u *Personnel) List(ctx context.Context) ([]PersonItem, error) {
	people, err := u.people.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]PersonItem, 0, len(people))
	for _, p := range people {
		out = append(out, toPersonItem(p))
	}
	return out, nil
}

func (u *Personnel) Create(ctx context.Context, in CreatePersonnelInput) (PersonItem, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return PersonItem{}, ErrInvalidInput
	}

	level := personnel.ExperienceLevel(strings.TrimSpace(in.ExperienceLevel))
	if level == "" {
		level = personnel.ExperienceJunior
	}
	if !personnel.ValidExperienceLevel(level) {
		return PersonItem{}, ErrInvalidInput
	}

	status := personnel.Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = personnel.StatusAvailable
	}
	if !personnel.ValidStatus(status) {
		return PersonItem{}, ErrInvalidInput
	}

	p := personnel.Person{
		ID:              uuid.New(),
		Name:            name,
		Email:           email,
		RoleTitle:       strings.TrimSpace(in.RoleTitle),
		ExperienceLevel: level,
		Status:          status,
	}
	if err := u.people.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return PersonItem{}, ErrEmailAlreadyRegistered
		}
		return PersonItem{}, ErrInternal
	}

	created, err := u.people.GetByID(ctx, p.ID)
	if err != nil {
		return PersonItem{}, ErrInternal
	}

	u.invalidateMatching(ctx)
	return toPersonItem(created), nil
}

func (u *Personnel) Update(ctx context.Context, id uuid.UUID, in UpdatePersonnelInput) error {
	current, err := u.people.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return ErrInvalidInput
	}
	level := personnel.ExperienceLevel(strings.TrimSpace(in.ExperienceLevel))
	if !personnel.ValidExperienceLevel(level) {
		return ErrInvalidInput
	}
	status := personnel.Status(strings.TrimSpace(in.Status))
	if !personnel.ValidStatus(status) {
		return ErrInvalidInput
	}

	current.Name = name
	current.Email = email
	current.RoleTitle = strings.TrimSpace(in.RoleTitle)
	current.ExperienceLevel = level
	current.Status = status

	if err := u.people.Update(ctx, current); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmailAlreadyRegistered
		case errors.Is(err, repository.ErrPersonnelNotFound):
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}

	u.invalidateMatching(ctx)
	return nil
}

func (u *Personnel) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.people.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}
	u.invalidateMatching(ctx)
	return nil
}

func (u *Personnel) ListSkills(ctx context.Context, id uuid.UUID) ([]PersonSkillItem, error) {
	if _, err := u.people.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return nil, ErrPersonnelNotFound
		}
		return nil, ErrInternal
	}

	items, err := u.skills.ListByPersonnel(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]PersonSkillItem, 0, len(items))
	for _, s := range items {
		out = append(out, PersonSkillItem{
			SkillID:          s.SkillID,
			SkillName:        s.SkillName,
			Category:         s.Category,
			Description:      s.Description,
			ProficiencyLevel: s.ProficiencyLevel,
		})
	}
	return out, nil
}

// SetSkills replaces the person's whole proficiency profile: the incoming
// list is authoritative and total, so existing rows are deleted and the new
// set inserted in one transaction. No diffing.
func (u *Personnel) SetSkills(ctx context.Context, id uuid.UUID, skills []SetSkillInput) error {
	if _, err := u.people.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return ErrPersonnelNotFound
		}
		return ErrInternal
	}

	seen := make(map[uuid.UUID]bool, len(skills))
	entries := make([]personnel.Skill, 0, len(skills))
	for _, s := range skills {
		if s.SkillID == uuid.Nil || seen[s.SkillID] {
			return ErrInvalidInput
		}
		if !personnel.ValidProficiency(s.ProficiencyLevel) {
			return ErrInvalidProficiency
		}
		seen[s.SkillID] = true
		entries = append(entries, personnel.Skill{
			PersonnelID:      id,
			SkillID:          s.SkillID,
			ProficiencyLevel: s.ProficiencyLevel,
		})
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return ErrInternal
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sr := u.skills.WithTx(tx)
	if err := sr.DeleteByPersonnel(ctx, id); err != nil {
		return ErrInternal
	}
	if err := sr.Insert(ctx, entries); err != nil {
		return ErrInternal
	}
	if err := tx.Commit(ctx); err != nil {
		return ErrInternal
	}

	u.invalidateMatching(ctx)
	return nil
}

// Cached matching results embed the candidate roster with names and
// statuses, so every personnel mutation flushes them.
func (u *Personnel) invalidateMatching(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, matchingCachePattern)
}

func toPersonItem(p personnel.Person) PersonItem {
	return PersonItem{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		RoleTitle:       p.RoleTitle,
		ExperienceLevel: p.ExperienceLevel,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
