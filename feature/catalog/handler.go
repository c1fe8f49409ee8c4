package catalog

import (
	"catalog-insights/core/apperror"
	"catalog-insights/core/logger"
	"catalog-insights/core/platform"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/items", h.HandleListItems)
	group.Post("/items/:id/request", h.HandleRequestDeployment)
}

// HandleListItems lists the published catalog items.
// @Summary List Catalog Items
// @Tags catalog
// @Produce json
// @Success 200 {array} models.CatalogItem
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /catalog/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.ListItems(c.Context())
	if err != nil {
		l.Error("Failed to list catalog items", zap.Error(err))
		return c.Status(apperror.StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleRequestDeployment requests a new deployment of a catalog item.
// @Summary Request Deployment
// @Description Submits a deployment request for the catalog item.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Catalog item id"
// @Param request body platform.DeploymentRequest true "Deployment request"
// @Success 202 {object} platform.DeploymentRequestResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /catalog/items/{id}/request [post]
func (h *Handler) HandleRequestDeployment(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req platform.DeploymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	result, err := h.service.RequestDeployment(c.Context(), c.Params("id"), req)
	if err != nil {
		status := apperror.StatusCode(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Deployment request failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(result)
}
