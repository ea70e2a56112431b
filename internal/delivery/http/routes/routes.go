package routes

import (
	"github.com/gofiber/fiber/v3"

	"resource-hub/internal/config"
	"resource-hub/internal/database"
	"resource-hub/internal/delivery/http/handler"
	"resource-hub/internal/usecase"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  usecase.MatchingCache
	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, cache usecase.MatchingCache) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  cache,
		health: handler.NewHealthHandler(db),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache)
}
