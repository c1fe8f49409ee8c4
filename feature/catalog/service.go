package catalog

import (
	"context"
	"sort"
	"strings"

	"catalog-insights/core/apperror"
	"catalog-insights/core/models"
	"catalog-insights/core/platform"

	"go.uber.org/zap"
)

// Platform is the catalog side of the provisioning platform.
type Platform interface {
	ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error)
	RequestDeployment(ctx context.Context, catalogItemID string, req platform.DeploymentRequest) (*platform.DeploymentRequestResult, error)
}

// Service handles catalog operations.
type Service struct {
	platform Platform
	logger   *zap.Logger
}

// NewService creates a new catalog service.
func NewService(p Platform, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{platform: p, logger: logger}
}

// ListItems returns the catalog items ordered by name, then id.
func (s *Service) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := s.platform.ListCatalogItems(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// RequestDeployment validates req and requests a deployment of a catalog item.
func (s *Service) RequestDeployment(ctx context.Context, catalogItemID string, req platform.DeploymentRequest) (*platform.DeploymentRequestResult, error) {
	if strings.TrimSpace(catalogItemID) == "" {
		return nil, apperror.NewValidationError("id", catalogItemID, "is required")
	}
	if err := apperror.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.platform.RequestDeployment(ctx, catalogItemID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Deployment requested",
		zap.String("catalog_item_id", catalogItemID),
		zap.String("deployment_id", result.DeploymentID),
		zap.String("project_id", req.ProjectID),
	)
	return result, nil
}
