package deployments

import (
	"context"
	"sort"
	"strings"

	"catalog-insights/core/apperror"
	"catalog-insights/core/models"
	"catalog-insights/core/platform"

	"go.uber.org/zap"
)

// Platform is the deployment side of the provisioning platform.
type Platform interface {
	ListDeployments(ctx context.Context, filter platform.DeploymentFilter) ([]models.Deployment, error)
	FetchResources(ctx context.Context, deploymentID string) ([]models.Resource, error)
}

// Service handles deployment lookups.
type Service struct {
	platform Platform
	logger   *zap.Logger
}

// NewService creates a new deployment service.
func NewService(p Platform, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{platform: p, logger: logger}
}

// List returns the deployments matching filter, newest first.
func (s *Service) List(ctx context.Context, filter platform.DeploymentFilter) ([]models.Deployment, error) {
	list, err := s.platform.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Resources returns the resources of one deployment.
func (s *Service) Resources(ctx context.Context, deploymentID string) ([]models.Resource, error) {
	if strings.TrimSpace(deploymentID) == "" {
		return nil, apperror.NewValidationError("id", deploymentID, "is required")
	}
	return s.platform.FetchResources(ctx, deploymentID)
}
