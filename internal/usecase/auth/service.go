package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	RoleTitle       string
	ExperienceLevel string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service handles credential checks against the personnel table. An account
// is a personnel row with a password hash; registering creates the person.
type Service struct {
	people repository.PersonnelRepository
}

func NewService(people repository.PersonnelRepository) *Service {
	return &Service{people: people}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (personnel.Person, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return personnel.Person{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return personnel.Person{}, ErrInvalidInput
	}

	level := personnel.ExperienceLevel(strings.TrimSpace(in.ExperienceLevel))
	if level == "" {
		level = personnel.ExperienceJunior
	}
	if !personnel.ValidExperienceLevel(level) {
		return personnel.Person{}, ErrInvalidInput
	}

	exists, err := s.people.ExistsByEmail(ctx, email)
	if err != nil {
		return personnel.Person{}, ErrInternal
	}
	if exists {
		return personnel.Person{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return personnel.Person{}, ErrInternal
	}

	p := personnel.Person{
		ID:              uuid.New(),
		Name:            name,
		Email:           email,
		PasswordHash:    string(hash),
		RoleTitle:       strings.TrimSpace(in.RoleTitle),
		ExperienceLevel: level,
		Status:          personnel.StatusAvailable,
	}

	if err := s.people.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return personnel.Person{}, ErrEmailAlreadyRegistered
		}
		return personnel.Person{}, ErrInternal
	}

	created, err := s.people.GetByID(ctx, p.ID)
	if err != nil {
		return personnel.Person{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (personnel.Person, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return personnel.Person{}, ErrInvalidCredentials
	}

	p, err := s.people.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return personnel.Person{}, ErrInvalidCredentials
		}
		return personnel.Person{}, ErrInternal
	}
	if p.PasswordHash == "" {
		// Rows created through the personnel CRUD have no credentials.
		return personnel.Person{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return personnel.Person{}, ErrInvalidCredentials
	}

	return sanitize(p), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitize(p personnel.Person) personnel.Person {
	p.PasswordHash = ""
	return p
}
