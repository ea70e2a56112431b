package v1

import (
	"github.com/gofiber/fiber/v3"

	"resource-hub/internal/config"
	"resource-hub/internal/database"
	"resource-hub/internal/delivery/http/handler"
	"resource-hub/internal/delivery/http/middleware"
	"resource-hub/internal/pkg/jwt"
	"resource-hub/internal/repository"
	"resource-hub/internal/usecase"
)

// Register wires the v1 API. Auth endpoints are public; everything else sits
// behind the access-token middleware.
func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.MatchingCache) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	personnelRepo := repository.NewPostgresPersonnelRepository(db)
	personnelSkillRepo := repository.NewPostgresPersonnelSkillRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	requirementRepo := repository.NewPostgresProjectRequirementRepository(db)
	assignmentRepo := repository.NewPostgresAssignmentRepository(db)

	authUC := usecase.NewAuthUsecase(personnelRepo, jwtSvc)
	personnelUC := usecase.NewPersonnelUsecase(db, personnelRepo, personnelSkillRepo, cache)
	skillUC := usecase.NewSkillUsecase(skillRepo, cache)
	projectUC := usecase.NewProjectUsecase(db, projectRepo, requirementRepo, assignmentRepo, cache)
	matchingUC := usecase.NewMatchingUsecase(projectRepo, requirementRepo, personnelRepo, personnelSkillRepo, assignmentRepo, cache)
	assignmentUC := usecase.NewAssignmentUsecase(db, assignmentRepo, personnelRepo, projectRepo, cache)
	utilizationUC := usecase.NewUtilizationUsecase(assignmentRepo, personnelRepo)

	authHandler := handler.NewAuthHandler(authUC)
	personnelHandler := handler.NewPersonnelHandler(personnelUC, utilizationUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	matchingHandler := handler.NewMatchingHandler(matchingUC)
	assignmentHandler := handler.NewAssignmentHandler(assignmentUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	personnelHandler.RegisterRoutes(protected)
	skillHandler.RegisterRoutes(protected)
	projectHandler.RegisterRoutes(protected)
	matchingHandler.RegisterRoutes(protected)
	assignmentHandler.RegisterRoutes(protected)
}
