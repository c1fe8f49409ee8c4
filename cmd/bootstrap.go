package cmd

import (
	"context"
	"fmt"
	"os"

	"catalog-insights/core/config"
	"catalog-insights/core/database"
	"catalog-insights/core/logger"
	"catalog-insights/core/metrics"
	"catalog-insights/core/platform"
	"catalog-insights/core/storage"
	"catalog-insights/feature/export"
	"catalog-insights/feature/reports"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds the shared dependencies of every command.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	platform *platform.Client
	metrics  *metrics.Metrics
}

func bootstrap() (*env, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := platform.NewClient(cfg.Platform, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create platform client: %w", err)
	}

	return &env{
		cfg:      cfg,
		logger:   logg,
		platform: client,
		metrics:  metrics.New(cfg.Metrics),
	}, nil
}

func (r *env) reportService() *reports.Service {
	return reports.NewService(r.platform, r.cfg.Reports, r.metrics, r.logger)
}

// exportWriter connects the optional export targets. A target that cannot
// be reached is logged and left out.
func (r *env) exportWriter(ctx context.Context) *export.Writer {
	var uploader *storage.Uploader
	if r.cfg.Storage.Enabled {
		if client, err := storage.NewClient(r.cfg.Storage); err != nil {
			r.logger.Warn("Optional storage client failed, uploads disabled", zap.Error(err))
		} else {
			uploader = storage.NewUploader(client, r.cfg.Storage.Bucket, r.cfg.Storage.Prefix)
		}
	}

	var runs *database.ExportRunRepository
	if r.cfg.Database.Enabled {
		if db, err := database.Connect(r.cfg.Database); err != nil {
			r.logger.Warn("Optional database connection failed, export history disabled", zap.Error(err))
		} else {
			repo := database.NewExportRunRepository(db)
			if err := repo.Migrate(ctx); err != nil {
				r.logger.Warn("Export history migration failed, export history disabled", zap.Error(err))
			} else {
				runs = repo
			}
		}
	}

	return export.NewWriter(r.cfg.Reports.ExportDir, uploader, runs, r.metrics, r.logger)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
