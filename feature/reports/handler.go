package reports

import (
	"strconv"

	"catalog-insights/core/apperror"
	"catalog-insights/core/logger"
	"catalog-insights/core/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Query defaults of the report endpoints.
const (
	DefaultDaysBack            = 30
	DefaultGroupBy             = report.GroupByDay
	DefaultCatalogUsageSort    = report.SortByDeployments
	DefaultResourcesUsageSort  = report.SortByDeploymentName
	DefaultResourcesUsageGroup = report.GroupByCatalogItem
)

// Handler handles HTTP requests for reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/activity", h.HandleActivity)
	group.Get("/catalog-usage", h.HandleCatalogUsage)
	group.Get("/resources-usage", h.HandleResourcesUsage)
	group.Get("/unsynced", h.HandleUnsynced)
	group.Post("/catalog/refresh", h.HandleRefreshCatalog)
}

// HandleActivity returns the deployment activity timeline.
// @Summary Deployment Activity
// @Description Deployment counts per period over the last days_back days, with trend and peak.
// @Tags reports
// @Produce json
// @Param days_back query int false "Days to look back (1-365)" default(30)
// @Param group_by query string false "Bucket size" Enums(day, week, month, year) default(day)
// @Success 200 {object} report.TimelineReport
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /reports/activity [get]
func (h *Handler) HandleActivity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	daysBack, err := queryInt(c, "days_back", DefaultDaysBack)
	if err != nil {
		return respondError(c, l, err)
	}

	result, err := h.service.Activity(c.Context(), report.TimelineOptions{
		DaysBack: daysBack,
		GroupBy:  c.Query("group_by", DefaultGroupBy),
	})
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(result)
}

// HandleCatalogUsage returns the usage of every catalog item.
// @Summary Catalog Usage
// @Description Deployments, resources and success rate per catalog item.
// @Tags reports
// @Produce json
// @Param include_zero query bool false "Include items without deployments"
// @Param sort_by query string false "Sort order" Enums(deployments, resources, name) default(deployments)
// @Param detailed query bool false "Fetch actual resource lists"
// @Success 200 {object} report.CatalogUsageReport
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /reports/catalog-usage [get]
func (h *Handler) HandleCatalogUsage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	includeZero, err := queryBool(c, "include_zero")
	if err != nil {
		return respondError(c, l, err)
	}
	detailed, err := queryBool(c, "detailed")
	if err != nil {
		return respondError(c, l, err)
	}

	result, err := h.service.CatalogUsage(c.Context(), report.CatalogUsageOptions{
		IncludeZero:       includeZero,
		SortBy:            c.Query("sort_by", DefaultCatalogUsageSort),
		DetailedResources: detailed,
	})
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(result)
}

// HandleResourcesUsage returns the resource usage of every deployment.
// @Summary Resources Usage
// @Description Resource counts per deployment, grouped and sorted, with a resource type breakdown.
// @Tags reports
// @Produce json
// @Param detailed query bool false "Fetch actual resource lists"
// @Param sort_by query string false "Sort order" Enums(deployment-name, catalog-item, resource-count, status) default(deployment-name)
// @Param group_by query string false "Grouping" Enums(catalog-item, resource-type, deployment-status) default(catalog-item)
// @Success 200 {object} report.ResourcesUsageReport
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /reports/resources-usage [get]
func (h *Handler) HandleResourcesUsage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	detailed, err := queryBool(c, "detailed")
	if err != nil {
		return respondError(c, l, err)
	}

	result, err := h.service.ResourcesUsage(c.Context(), report.ResourcesUsageOptions{
		DetailedResources: detailed,
		SortBy:            c.Query("sort_by", DefaultResourcesUsageSort),
		GroupBy:           c.Query("group_by", DefaultResourcesUsageGroup),
	})
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(result)
}

// HandleUnsynced returns the deployments that could not be linked to a catalog item.
// @Summary Unsynced Deployments
// @Description Unsynced deployments with reason, age, recommended action and cost impact.
// @Tags reports
// @Produce json
// @Param detailed query bool false "Fetch actual resource lists"
// @Param reason query string false "Only this reason" Enums(missing_catalog_references, catalog_item_deleted, blueprint_deleted, catalog_name_mismatch, external_creation)
// @Success 200 {object} report.UnsyncReport
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /reports/unsynced [get]
func (h *Handler) HandleUnsynced(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	detailed, err := queryBool(c, "detailed")
	if err != nil {
		return respondError(c, l, err)
	}

	result, err := h.service.Unsynced(c.Context(), report.UnsyncOptions{
		DetailedResources: detailed,
		Reason:            c.Query("reason"),
	})
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(result)
}

// HandleRefreshCatalog rebuilds the catalog index.
// @Summary Refresh Catalog Index
// @Description Drops the cached catalog index and reloads the catalog from the platform.
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]int "Indexed items"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /reports/catalog/refresh [post]
func (h *Handler) HandleRefreshCatalog(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	n, err := h.service.RefreshCatalog(c.Context())
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(fiber.Map{"catalog_items": n})
}

func respondError(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := apperror.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Report request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(key, raw, "must be an integer")
	}
	return n, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.NewValidationError(key, raw, "must be a boolean")
	}
	return b, nil
}
