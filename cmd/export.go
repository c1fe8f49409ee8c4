package cmd

import (
	"fmt"
	"time"

	"catalog-insights/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export deployments grouped by catalog item",
	Long: `Writes one JSON file per catalog item with its deployments, plus a summary,
into a timestamped directory under reports.export_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		includeUnsynced, _ := cmd.Flags().GetBool("include-unsynced")
		xlsx, _ := cmd.Flags().GetBool("xlsx")
		upload, _ := cmd.Flags().GetBool("upload")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		ctx := cmd.Context()
		start := time.Now()

		svc := export.NewService(rt.reportService(), rt.exportWriter(ctx), rt.logger)
		res, err := svc.Export(ctx, export.Options{
			IncludeUnsynced: includeUnsynced,
			WriteOptions:    export.WriteOptions{XLSX: xlsx, Upload: upload},
		})
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return printJSON(res)
		}

		fmt.Println("\n=== Export ===")
		fmt.Printf("Run: %s\n", res.RunID)
		fmt.Printf("Directory: %s\n", res.Directory)
		fmt.Printf("Bundles: %d  Deployments: %d  Unsynced: %d\n", res.Bundles, res.Deployments, res.Unsynced)
		fmt.Printf("Files: %d  Uploaded: %d\n", len(res.Files), len(res.Objects))
		fmt.Printf("Execution Time: %s\n", time.Since(start).String())

		rt.logger.Info("Export completed",
			zap.String("run_id", res.RunID),
			zap.Int("files", len(res.Files)),
			zap.Duration("execution_time", time.Since(start)),
		)
		return nil
	},
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent export runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		ctx := cmd.Context()

		runs, err := rt.exportWriter(ctx).History(ctx, limit)
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return printJSON(runs)
		}

		fmt.Println("\n=== Export Runs ===")
		for _, r := range runs {
			fmt.Printf("%s  %-9s bundles=%d deployments=%d uploaded=%t  %s\n",
				r.StartedAt.Format(time.RFC3339), r.Status, r.Bundles, r.Deployments, r.Uploaded, r.Directory)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().Bool("include-unsynced", false, "Include unsynced deployments")
	exportCmd.Flags().Bool("xlsx", false, "Also write summary.xlsx")
	exportCmd.Flags().Bool("upload", false, "Upload the files to object storage")
	exportHistoryCmd.Flags().Int("limit", 20, "Number of runs")

	exportCmd.AddCommand(exportHistoryCmd)
	RootCmd.AddCommand(exportCmd)
}
