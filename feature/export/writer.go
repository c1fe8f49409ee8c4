package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"catalog-insights/core/apperror"
	"catalog-insights/core/bundle"
	"catalog-insights/core/database"
	"catalog-insights/core/metrics"
	"catalog-insights/core/report"
	"catalog-insights/core/storage"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// File names written next to the per bundle files.
const (
	SummaryFile = "summary.json"
	XLSXFile    = "summary.xlsx"
)

// Run statuses stored in the history.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// dirLayout names run directories after their UTC start time.
const dirLayout = "20060102T150405Z"

// WriteOptions controls the optional outputs of a run.
type WriteOptions struct {
	// XLSX adds summary.xlsx.
	XLSX bool
	// Upload copies every written file to object storage.
	Upload bool
}

// Result describes a finished export run.
type Result struct {
	RunID       string    `json:"run_id"`
	Directory   string    `json:"directory"`
	Files       []string  `json:"files"`
	Objects     []string  `json:"objects,omitempty"`
	Bundles     int       `json:"bundles"`
	Deployments int       `json:"deployments"`
	Unsynced    int       `json:"unsynced"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// BundleSummary is one line of summary.json.
type BundleSummary struct {
	Key             string `json:"key"`
	File            string `json:"file"`
	CatalogItemID   string `json:"catalog_item_id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	DeploymentCount int    `json:"deployment_count"`
	ResourceCount   int    `json:"resource_count"`
}

// Summary is the content of summary.json.
type Summary struct {
	RunID         string                     `json:"run_id"`
	GeneratedAt   time.Time                  `json:"generated_at"`
	Totals        report.CatalogUsageSummary `json:"totals"`
	Bundles       []BundleSummary            `json:"bundles"`
	UnsyncedCount int                        `json:"unsynced_count"`
}

// Writer writes export bundles to a local directory and optionally to
// object storage and the run history.
type Writer struct {
	baseDir  string
	uploader *storage.Uploader
	runs     *database.ExportRunRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewWriter creates a writer rooted at baseDir. uploader and runs may be nil,
// in which case uploads and run history are unavailable.
func NewWriter(baseDir string, uploader *storage.Uploader, runs *database.ExportRunRepository, m *metrics.Metrics, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		baseDir:  baseDir,
		uploader: uploader,
		runs:     runs,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// CanUpload reports whether an object storage target is configured.
func (w *Writer) CanUpload() bool {
	return w.uploader != nil
}

// Write exports b into a new timestamped directory under the base directory.
func (w *Writer) Write(ctx context.Context, b *bundle.ExportBundle, opts WriteOptions) (*Result, error) {
	started := w.now().UTC()
	res := &Result{
		RunID:     uuid.NewString(),
		Directory: filepath.Join(w.baseDir, "export_"+started.Format(dirLayout)),
		Files:     []string{},
		StartedAt: started,
	}

	err := w.write(ctx, b, opts, res)
	res.FinishedAt = w.now().UTC()

	w.metrics.RecordExport(err)
	w.record(ctx, res, opts, err)

	if err != nil {
		w.logger.Error("Export failed", zap.String("run_id", res.RunID), zap.Error(err))
		return nil, err
	}
	w.logger.Info("Export written",
		zap.String("run_id", res.RunID),
		zap.String("directory", res.Directory),
		zap.Int("files", len(res.Files)),
		zap.Int("objects", len(res.Objects)),
	)
	return res, nil
}

func (w *Writer) write(ctx context.Context, b *bundle.ExportBundle, opts WriteOptions, res *Result) error {
	if b == nil {
		b = &bundle.ExportBundle{}
	}
	if opts.Upload && w.uploader == nil {
		return apperror.NewValidationError("upload", true, "object storage is not configured")
	}
	if err := os.MkdirAll(res.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	summary := Summary{
		RunID:       res.RunID,
		GeneratedAt: res.StartedAt,
		Totals:      b.Summary,
		Bundles:     make([]BundleSummary, 0, len(b.Bundles)),
	}

	written := make(map[string]bool, len(b.Bundles))
	for _, bd := range b.Bundles {
		name := bd.Key + ".json"
		if written[name] || bd.Key == bundle.UnsyncedKey {
			return fmt.Errorf("duplicate bundle key %q", bd.Key)
		}
		written[name] = true
		if err := w.writeJSON(res, name, bd); err != nil {
			return err
		}
		summary.Bundles = append(summary.Bundles, BundleSummary{
			Key:             bd.Key,
			File:            name,
			CatalogItemID:   bd.CatalogItem.ID,
			Name:            bd.CatalogItem.Name,
			Type:            bd.CatalogItem.Type,
			DeploymentCount: bd.DeploymentCount,
			ResourceCount:   bd.ResourceCount,
		})
		res.Bundles++
		res.Deployments += bd.DeploymentCount
	}

	if b.Unsynced != nil {
		if err := w.writeJSON(res, bundle.UnsyncedKey+".json", b.Unsynced); err != nil {
			return err
		}
		summary.UnsyncedCount = b.Unsynced.DeploymentCount
		res.Unsynced = b.Unsynced.DeploymentCount
		res.Deployments += b.Unsynced.DeploymentCount
	}

	if err := w.writeJSON(res, SummaryFile, summary); err != nil {
		return err
	}

	if opts.XLSX {
		if err := writeXLSX(filepath.Join(res.Directory, XLSXFile), b); err != nil {
			return fmt.Errorf("failed to write %s: %w", XLSXFile, err)
		}
		res.Files = append(res.Files, XLSXFile)
	}

	sort.Strings(res.Files)

	if opts.Upload {
		return w.upload(ctx, res)
	}
	return nil
}

func (w *Writer) writeJSON(res *Result, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(res.Directory, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	res.Files = append(res.Files, name)
	return nil
}

func (w *Writer) upload(ctx context.Context, res *Result) error {
	if err := w.uploader.EnsureBucket(ctx); err != nil {
		return err
	}
	dir := filepath.Base(res.Directory)
	for _, name := range res.Files {
		object, err := w.uploader.UploadFile(ctx, dir+"/"+name, filepath.Join(res.Directory, name))
		if err != nil {
			return err
		}
		res.Objects = append(res.Objects, object)
	}
	return w.verifyUpload(ctx, dir, res.Objects)
}

// verifyUpload lists the run prefix and fails when an uploaded object is missing.
func (w *Writer) verifyUpload(ctx context.Context, dir string, objects []string) error {
	listed, err := w.uploader.List(ctx, dir)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(listed))
	for _, name := range listed {
		seen[name] = struct{}{}
	}
	for _, name := range objects {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("uploaded object %s not found in bucket %s", name, w.uploader.Bucket())
		}
	}
	return nil
}

// record stores the run in the history. A history failure never fails the export.
func (w *Writer) record(ctx context.Context, res *Result, opts WriteOptions, runErr error) {
	if w.runs == nil {
		return
	}
	run := &database.ExportRun{
		RunID:       res.RunID,
		StartedAt:   res.StartedAt,
		FinishedAt:  res.FinishedAt,
		Directory:   res.Directory,
		Files:       len(res.Files),
		Bundles:     res.Bundles,
		Deployments: res.Deployments,
		Unsynced:    res.Unsynced,
		Uploaded:    opts.Upload && runErr == nil,
		Status:      StatusSucceeded,
	}
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = truncate(runErr.Error(), 1024)
	}
	if err := w.runs.Create(ctx, run); err != nil {
		w.logger.Warn("Failed to record export run", zap.String("run_id", res.RunID), zap.Error(err))
	}
}

// History returns the latest export runs. It fails when no history database is configured.
func (w *Writer) History(ctx context.Context, limit int) ([]database.ExportRun, error) {
	if w.runs == nil {
		return nil, fmt.Errorf("export history is not configured")
	}
	return w.runs.Recent(ctx, limit)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
