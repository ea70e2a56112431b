package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"resource-hub/internal/delivery/http/middleware"
	"resource-hub/internal/pkg/response"
	"resource-hub/internal/usecase"
)

type MatchingHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchingHandler(uc usecase.MatchingUsecase) *MatchingHandler {
	return &MatchingHandler{uc: uc}
}

func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/projects/:id/matching", h.Match)
}

// Match ranks every person against the project's requirement set. The result
// is cached per project until the next relevant mutation.
func (h *MatchingHandler) Match(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.MatchCandidates(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrProjectNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
