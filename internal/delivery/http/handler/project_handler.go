package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"resource-hub/internal/delivery/http/dto"
	"resource-hub/internal/delivery/http/middleware"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/pkg/response"
	"resource-hub/internal/usecase"
)

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type projectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *date.Date `json:"start_date"`
	EndDate     *date.Date `json:"end_date"`
	Status      string     `json:"status"`
}

type requirementsRequest struct {
	Requirements []struct {
		SkillID             uuid.UUID `json:"skill_id"`
		MinProficiencyLevel int       `json:"min_proficiency_level"`
	} `json:"requirements"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/requirements", h.ListRequirements)
	grp.Put("/:id/requirements", h.ReplaceRequirements)
	grp.Post("/:id/requirements", h.AddRequirements)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	res := make([]dto.ProjectResponse, 0, len(items))
	for _, it := range items {
		res = append(res, projectResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	res := dto.ProjectDetailResponse{
		ProjectResponse:   projectResponse(detail.ProjectItem),
		Requirements:      make([]dto.ProjectRequirementResponse, 0, len(detail.Requirements)),
		AssignedPersonnel: make([]dto.ProjectAssigneeResponse, 0, len(detail.AssignedPersonnel)),
	}
	for _, r := range detail.Requirements {
		res.Requirements = append(res.Requirements, dto.ProjectRequirementResponse{
			SkillID:             r.SkillID,
			SkillName:           r.SkillName,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}
	for _, a := range detail.AssignedPersonnel {
		res.AssignedPersonnel = append(res.AssignedPersonnel, dto.ProjectAssigneeResponse{
			PersonnelID:        a.PersonnelID,
			Name:               a.Name,
			RoleTitle:          a.RoleTitle,
			CapacityPercentage: a.CapacityPercentage,
			StartDate:          a.StartDate,
			EndDate:            a.EndDate,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), projectInput(req))
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Project created successfully", projectResponse(created))
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Update(c.Context(), id, projectInput(req)); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Project updated successfully", nil)
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Project deleted successfully", nil)
}

func (h *ProjectHandler) ListRequirements(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	reqs, err := h.uc.ListRequirements(c.Context(), id)
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	res := make([]dto.ProjectRequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		res = append(res, dto.ProjectRequirementResponse{
			SkillID:             r.SkillID,
			SkillName:           r.SkillName,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) ReplaceRequirements(c fiber.Ctx) error {
	return h.writeRequirements(c, h.uc.ReplaceRequirements, "Requirements replaced successfully")
}

func (h *ProjectHandler) AddRequirements(c fiber.Ctx) error {
	return h.writeRequirements(c, h.uc.AddRequirements, "Requirements added successfully")
}

func (h *ProjectHandler) writeRequirements(c fiber.Ctx, apply func(ctx context.Context, projectID uuid.UUID, reqs []usecase.RequirementInput) error, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req requirementsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	reqs := make([]usecase.RequirementInput, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		reqs = append(reqs, usecase.RequirementInput{
			SkillID:             r.SkillID,
			MinProficiencyLevel: r.MinProficiencyLevel,
		})
	}

	if err := apply(c.Context(), id, reqs); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, message, nil)
}

func projectInput(req projectRequest) usecase.ProjectInput {
	return usecase.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	}
}

func projectResponse(it usecase.ProjectItem) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		StartDate:   it.StartDate,
		EndDate:     it.EndDate,
		Status:      string(it.Status),
	}
}

func mapProjectUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date range", nil, err)
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
