package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"resource-hub/internal/delivery/http/dto"
	"resource-hub/internal/delivery/http/middleware"
	"resource-hub/internal/pkg/response"
	"resource-hub/internal/usecase"
)

type PersonnelHandler struct {
	uc          usecase.PersonnelUsecase
	utilization usecase.UtilizationUsecase
}

type personnelRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	RoleTitle       string `json:"role_title"`
	ExperienceLevel string `json:"experience_level"`
	Status          string `json:"status"`
}

type setSkillsRequest struct {
	Skills []struct {
		SkillID          uuid.UUID `json:"skill_id"`
		ProficiencyLevel int       `json:"proficiency_level"`
	} `json:"skills"`
}

func NewPersonnelHandler(uc usecase.PersonnelUsecase, utilization usecase.UtilizationUsecase) *PersonnelHandler {
	return &PersonnelHandler{uc: uc, utilization: utilization}
}

func (h *PersonnelHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/personnel")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/skills", h.ListSkills)
	grp.Put("/:id/skills", h.SetSkills)
	grp.Get("/:id/utilization", h.Utilization)
}

func (h *PersonnelHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}

	res := make([]dto.PersonnelResponse, 0, len(items))
	for _, it := range items {
		res = append(res, personItemResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *PersonnelHandler) Create(c fiber.Ctx) error {
	var req personnelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), usecase.CreatePersonnelInput{
		Name:            req.Name,
		Email:           req.Email,
		RoleTitle:       req.RoleTitle,
		ExperienceLevel: req.ExperienceLevel,
		Status:          req.Status,
	})
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Personnel created successfully", personItemResponse(created))
}

func (h *PersonnelHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req personnelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Update(c.Context(), id, usecase.UpdatePersonnelInput{
		Name:            req.Name,
		Email:           req.Email,
		RoleTitle:       req.RoleTitle,
		ExperienceLevel: req.ExperienceLevel,
		Status:          req.Status,
	}); err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Personnel updated successfully", nil)
}

func (h *PersonnelHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Personnel deleted successfully", nil)
}

func (h *PersonnelHandler) ListSkills(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListSkills(c.Context(), id)
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}

	res := make([]dto.PersonnelSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.PersonnelSkillResponse{
			SkillID:          it.SkillID,
			SkillName:        it.SkillName,
			Category:         it.Category,
			Description:      it.Description,
			ProficiencyLevel: it.ProficiencyLevel,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *PersonnelHandler) SetSkills(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req setSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	skills := make([]usecase.SetSkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, usecase.SetSkillInput{
			SkillID:          s.SkillID,
			ProficiencyLevel: s.ProficiencyLevel,
		})
	}

	if err := h.uc.SetSkills(c.Context(), id, skills); err != nil {
		return mapPersonnelUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills updated successfully", nil)
}

func (h *PersonnelHandler) Utilization(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sum, err := h.utilization.Status(c.Context(), id)
	if err != nil {
		return mapPersonnelUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UtilizationResponse{
		PersonnelID: id,
		Utilization: sum.Utilization,
		Status:      string(sum.Status),
	})
}

func personItemResponse(it usecase.PersonItem) dto.PersonnelResponse {
	return dto.PersonnelResponse{
		ID:              it.ID,
		Name:            it.Name,
		Email:           it.Email,
		RoleTitle:       it.RoleTitle,
		ExperienceLevel: string(it.ExperienceLevel),
		Status:          string(it.Status),
		CreatedAt:       it.CreatedAt,
	}
}

func mapPersonnelUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPersonnelNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Personnel not found", nil, err)
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
