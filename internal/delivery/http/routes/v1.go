package routes

import (
	"github.com/gofiber/fiber/v3"

	"resource-hub/internal/config"
	"resource-hub/internal/database"
	v1 "resource-hub/internal/delivery/http/routes/v1"
	"resource-hub/internal/usecase"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, cache usecase.MatchingCache) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, cache)
}
