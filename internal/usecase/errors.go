package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")

	ErrPersonnelNotFound = errors.New("personnel not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrSkillNotFound     = errors.New("skill not found")

	ErrDateOverlap        = errors.New("personnel already assigned to overlapping project dates")
	ErrInvalidCapacity    = errors.New("capacity percentage out of range")
	ErrInvalidProficiency = errors.New("proficiency level out of range")
	ErrInvalidDateRange   = errors.New("start date after end date")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrSkillNameTaken         = errors.New("skill name already exists")
)
