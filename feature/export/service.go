package export

import (
	"context"
	"fmt"

	"catalog-insights/core/bundle"
	"catalog-insights/core/database"
	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"

	"go.uber.org/zap"
)

// Source provides the deployments and the matcher an export is grouped with.
type Source interface {
	Load(ctx context.Context) ([]models.Deployment, *reconcile.Matcher, error)
}

// Options selects what an export contains.
type Options struct {
	IncludeUnsynced bool
	WriteOptions
}

// Service groups the live deployments into bundles and writes them.
type Service struct {
	source Source
	writer *Writer
	logger *zap.Logger
}

// NewService creates a new export service.
func NewService(source Source, writer *Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, writer: writer, logger: logger}
}

// Export builds the export bundle and writes it.
func (s *Service) Export(ctx context.Context, opts Options) (*Result, error) {
	deployments, matcher, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	b := bundle.Group(deployments, matcher, opts.IncludeUnsynced)
	res, err := s.writer.Write(ctx, b, opts.WriteOptions)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return res, nil
}

// History returns the latest export runs.
func (s *Service) History(ctx context.Context, limit int) ([]database.ExportRun, error) {
	return s.writer.History(ctx, limit)
}
