package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"resource-hub/internal/delivery/http/dto"
	"resource-hub/internal/delivery/http/middleware"
	"resource-hub/internal/pkg/date"
	"resource-hub/internal/pkg/response"
	"resource-hub/internal/usecase"
	"resource-hub/internal/ws"
)

type AssignmentHandler struct {
	uc usecase.AssignmentUsecase
}

type assignRequest struct {
	CapacityPercentage *int       `json:"capacity_percentage"`
	StartDate          *date.Date `json:"start_date"`
	EndDate            *date.Date `json:"end_date"`
}

func NewAssignmentHandler(uc usecase.AssignmentUsecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/projects/:project_id/assign/:personnel_id", h.Toggle)
	r.Delete("/projects/:project_id/assign/:personnel_id", h.Release)
}

// Toggle assigns the person when unassigned and releases them when already
// assigned; the response message tells the caller which happened.
func (h *AssignmentHandler) Toggle(c fiber.Ctx) error {
	projectID, personnelID, err := assignmentIDs(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	result, err := h.uc.Toggle(c.Context(), projectID, personnelID, usecase.ToggleAssignmentInput{
		CapacityPercentage: req.CapacityPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
	})
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}

	action := string(result.Outcome)
	ws.NotifyAssignmentChanged(projectID, personnelID, action, result.Utilization, result.Status)

	message := "Personnel assigned successfully"
	if result.Outcome == usecase.OutcomeReleased {
		message = "Personnel released from project successfully"
	}

	return response.Success(c, fiber.StatusOK, message, dto.AssignmentChangeResponse{
		ProjectID:   projectID,
		PersonnelID: personnelID,
		Action:      action,
		Utilization: result.Utilization,
		Status:      result.Status,
	})
}

func (h *AssignmentHandler) Release(c fiber.Ctx) error {
	projectID, personnelID, err := assignmentIDs(c)
	if err != nil {
		return err
	}

	sum, err := h.uc.Release(c.Context(), projectID, personnelID)
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}

	ws.NotifyAssignmentChanged(projectID, personnelID, string(usecase.OutcomeReleased), sum.Utilization, string(sum.Status))

	return response.Success(c, fiber.StatusOK, "Personnel unassigned successfully", dto.AssignmentChangeResponse{
		ProjectID:   projectID,
		PersonnelID: personnelID,
		Action:      string(usecase.OutcomeReleased),
		Utilization: sum.Utilization,
		Status:      string(sum.Status),
	})
}

func assignmentIDs(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	personnelID, err := uuid.Parse(c.Params("personnel_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return projectID, personnelID, nil
}

func mapAssignmentUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrPersonnelNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Personnel not found", nil, err)
	case errors.Is(err, usecase.ErrDateOverlap):
		return middleware.NewAppError(fiber.StatusConflict, "Personnel already assigned to a project with overlapping dates", nil, err)
	case errors.Is(err, usecase.ErrInvalidCapacity):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid capacity percentage", nil, err)
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date range", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
