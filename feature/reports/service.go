package reports

import (
	"context"
	"fmt"
	"time"

	"catalog-insights/core/metrics"
	"catalog-insights/core/models"
	"catalog-insights/core/platform"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/report"
	"catalog-insights/core/resources"

	"go.uber.org/zap"
)

// Report kinds used as metric labels.
const (
	KindActivity       = "activity"
	KindCatalogUsage   = "catalog_usage"
	KindResourcesUsage = "resources_usage"
	KindUnsynced       = "unsynced"
)

// Platform is the data source the reports are computed from.
type Platform interface {
	reconcile.CatalogLister
	resources.Fetcher
	ListDeployments(ctx context.Context, filter platform.DeploymentFilter) ([]models.Deployment, error)
}

// Service builds reports over the live platform data.
type Service struct {
	platform Platform
	registry *reconcile.Registry
	cfg      report.Config
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a report service. It owns its own catalog index registry.
func NewService(p Platform, cfg report.Config, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		platform: p,
		registry: reconcile.NewRegistry(p, cfg.CatalogCacheTTL()),
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Load returns every deployment together with a matcher over the current catalog index.
func (s *Service) Load(ctx context.Context) ([]models.Deployment, *reconcile.Matcher, error) {
	idx, err := s.registry.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog index: %w", err)
	}
	s.metrics.SetCatalogItems(idx.Len())
	if c := idx.Collisions(); len(c) > 0 {
		s.logger.Debug("Catalog names excluded from fuzzy matching", zap.Strings("names", c))
	}

	deployments, err := s.platform.ListDeployments(ctx, platform.DeploymentFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	matcher := reconcile.NewMatcher(idx, reconcile.WithFuzzyThreshold(s.cfg.FuzzyThreshold))
	s.metrics.RecordMatches(matcher.MatchAll(deployments))
	return deployments, matcher, nil
}

// RefreshCatalog drops the cached catalog index and rebuilds it.
// It returns the number of indexed catalog items.
func (s *Service) RefreshCatalog(ctx context.Context) (int, error) {
	s.registry.Invalidate()
	idx, err := s.registry.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to rebuild catalog index: %w", err)
	}
	s.metrics.SetCatalogItems(idx.Len())
	s.logger.Info("Catalog index rebuilt", zap.Int("items", idx.Len()))
	return idx.Len(), nil
}

// Activity builds the deployment activity timeline.
func (s *Service) Activity(ctx context.Context, opts report.TimelineOptions) (result *report.TimelineReport, err error) {
	defer s.observe(KindActivity, time.Now(), &err)

	if err = report.ValidateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	deployments, matcher, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return report.BuildTimeline(deployments, matcher, opts)
}

// CatalogUsage builds the per catalog item usage report.
func (s *Service) CatalogUsage(ctx context.Context, opts report.CatalogUsageOptions) (result *report.CatalogUsageReport, err error) {
	defer s.observe(KindCatalogUsage, time.Now(), &err)

	if err = report.ValidateOptions(opts); err != nil {
		return nil, err
	}
	deployments, matcher, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts.Aggregation = s.cfg.Aggregation(s.logger)
	result, err = report.BuildCatalogUsage(ctx, deployments, matcher, s.platform, opts)
	if err != nil {
		return nil, err
	}
	s.recordWarning(result.Warning)
	return result, nil
}

// ResourcesUsage builds the per deployment resource usage report.
func (s *Service) ResourcesUsage(ctx context.Context, opts report.ResourcesUsageOptions) (result *report.ResourcesUsageReport, err error) {
	defer s.observe(KindResourcesUsage, time.Now(), &err)

	if err = report.ValidateOptions(opts); err != nil {
		return nil, err
	}
	deployments, matcher, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts.Aggregation = s.cfg.Aggregation(s.logger)
	result, err = report.BuildResourcesUsage(ctx, deployments, matcher, s.platform, opts)
	if err != nil {
		return nil, err
	}
	s.recordWarning(result.Warning)
	return result, nil
}

// Unsynced builds the unsynced deployment diagnostics.
func (s *Service) Unsynced(ctx context.Context, opts report.UnsyncOptions) (result *report.UnsyncReport, err error) {
	defer s.observe(KindUnsynced, time.Now(), &err)

	if err = report.ValidateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	deployments, matcher, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts.Aggregation = s.cfg.Aggregation(s.logger)
	result, err = report.BuildUnsyncDiagnostics(ctx, deployments, matcher, s.platform, opts)
	if err != nil {
		return nil, err
	}
	if opts.Reason == "" {
		s.metrics.SetUnsynced(result.ReasonGroups)
	}
	s.recordWarning(result.Warning)
	return result, nil
}

func (s *Service) observe(kind string, start time.Time, err *error) {
	duration := time.Since(start)
	s.metrics.RecordReport(kind, *err, duration)
	if *err != nil {
		s.logger.Warn("Report failed", zap.String("kind", kind), zap.Error(*err))
		return
	}
	s.logger.Debug("Report built", zap.String("kind", kind), zap.Duration("duration", duration))
}

func (s *Service) recordWarning(w *resources.PartialResultWarning) {
	if w == nil {
		return
	}
	s.metrics.RecordFetchFailures(len(w.DeploymentIDs))
	s.logger.Warn("Report built with partial resource data", zap.Strings("deployment_ids", w.DeploymentIDs))
}
