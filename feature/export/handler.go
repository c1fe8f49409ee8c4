package export

import (
	"strconv"

	"catalog-insights/core/apperror"
	"catalog-insights/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/export", h.HandleExport)
	app.Get("/export/runs", h.HandleHistory)
}

// HandleExport writes an export of every deployment grouped by catalog item.
// @Summary Export Bundles
// @Description Writes one JSON file per catalog item bundle plus a summary, optionally with unsynced deployments, an XLSX summary and an upload to object storage.
// @Tags export
// @Produce json
// @Param include_unsynced query bool false "Include unsynced deployments"
// @Param xlsx query bool false "Write summary.xlsx"
// @Param upload query bool false "Upload to object storage"
// @Success 201 {object} export.Result
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 502 {object} map[string]string "Platform unavailable"
// @Router /export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var opts Options
	for key, dst := range map[string]*bool{
		"include_unsynced": &opts.IncludeUnsynced,
		"xlsx":             &opts.XLSX,
		"upload":           &opts.Upload,
	} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": apperror.NewValidationError(key, raw, "must be a boolean").Error(),
			})
		}
		*dst = v
	}

	res, err := h.service.Export(c.Context(), opts)
	if err != nil {
		status := apperror.StatusCode(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Export failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleHistory lists the latest export runs.
// @Summary Export History
// @Tags export
// @Produce json
// @Param limit query int false "Number of runs" default(20)
// @Success 200 {array} database.ExportRun
// @Failure 503 {object} map[string]string "History not configured"
// @Router /export/runs [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	if h.service.writer.runs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "export history is not configured",
		})
	}

	runs, err := h.service.History(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list export runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(runs)
}
