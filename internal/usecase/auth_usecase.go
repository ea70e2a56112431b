package usecase

import (
	"context"
	"errors"

	"resource-hub/internal/domain/personnel"
	"resource-hub/internal/pkg/jwt"
	"resource-hub/internal/repository"
	ucauth "resource-hub/internal/usecase/auth"
)

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (personnel.Person, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (personnel.Person, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	people  repository.PersonnelRepository
	jwt     jwt.Service
}

func NewAuthUsecase(people repository.PersonnelRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(people), people: people, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (personnel.Person, string, string, error) {
	p, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return personnel.Person{}, "", "", err
	}
	return u.issueTokens(p)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (personnel.Person, string, string, error) {
	p, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return personnel.Person{}, "", "", err
	}
	return u.issueTokens(p)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	p, err := u.people.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrPersonnelNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, newRefresh, nil
}

func (u *Auth) issueTokens(p personnel.Person) (personnel.Person, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email)
	if err != nil {
		return personnel.Person{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return personnel.Person{}, "", "", ErrInternal
	}
	return p, access, refresh, nil
}
