package deployments

import (
	"catalog-insights/core/apperror"
	"catalog-insights/core/logger"
	"catalog-insights/core/platform"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for deployments.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the deployment routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/deployments")
	group.Get("/", h.HandleList)
	group.Get("/:id/resources", h.HandleResources)
}

// HandleList lists deployments.
// @Summary List Deployments
// @Tags deployments
// @Produce json
// @Param project query string false "Project id"
// @Param status query string false "Deployment status"
// @Param search query string false "Free text search"
// @Success 200 {array} models.Deployment
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /deployments [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.List(c.Context(), platform.DeploymentFilter{
		ProjectID: c.Query("project"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
	})
	if err != nil {
		l.Error("Failed to list deployments", zap.Error(err))
		return c.Status(apperror.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(list)
}

// HandleResources lists the resources of a deployment.
// @Summary Deployment Resources
// @Tags deployments
// @Produce json
// @Param id path string true "Deployment id"
// @Success 200 {array} models.Resource
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /deployments/{id}/resources [get]
func (h *Handler) HandleResources(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	list, err := h.service.Resources(c.Context(), id)
	if err != nil {
		l.Error("Failed to fetch resources", zap.String("deployment_id", id), zap.Error(err))
		return c.Status(apperror.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(list)
}
