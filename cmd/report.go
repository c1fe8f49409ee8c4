package cmd

import (
	"fmt"
	"time"

	"catalog-insights/core/reconcile"
	"catalog-insights/core/report"
	"catalog-insights/core/resources"
	"catalog-insights/feature/reports"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build reconciliation reports",
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Deployment activity over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		daysBack, _ := cmd.Flags().GetInt("days-back")
		groupBy, _ := cmd.Flags().GetString("group-by")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		start := time.Now()

		result, err := rt.reportService().Activity(cmd.Context(), report.TimelineOptions{DaysBack: daysBack, GroupBy: groupBy})
		if err != nil {
			return fmt.Errorf("activity report failed: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}

		s := result.Summary
		fmt.Println("\n=== Deployment Activity ===")
		fmt.Printf("Range: %s .. %s (%d days, by %s)\n", s.RangeStart.Format(time.RFC3339), s.RangeEnd.Format(time.RFC3339), s.DaysBack, s.GroupBy)
		for _, b := range result.Buckets {
			fmt.Printf("%-10s total=%d successful=%d failed=%d in_progress=%d\n", b.Period, b.Total, b.Successful, b.Failed, b.InProgress)
		}
		fmt.Printf("Total: %d  Success Rate: %.2f%%  Trend: %s\n", s.TotalDeployments, s.SuccessRate, result.Trend.Direction)
		if result.Peak != nil {
			fmt.Printf("Peak: %s (%d)\n", result.Peak.Period, result.Peak.Total)
		}

		rt.logger.Info("Activity report completed",
			zap.Int("total", s.TotalDeployments),
			zap.String("trend", result.Trend.Direction),
			zap.Duration("execution_time", time.Since(start)),
		)
		return nil
	},
}

var catalogUsageCmd = &cobra.Command{
	Use:   "catalog-usage",
	Short: "Usage per catalog item",
	RunE: func(cmd *cobra.Command, args []string) error {
		includeZero, _ := cmd.Flags().GetBool("include-zero")
		sortBy, _ := cmd.Flags().GetString("sort-by")
		detailed, _ := cmd.Flags().GetBool("detailed")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		start := time.Now()

		result, err := rt.reportService().CatalogUsage(cmd.Context(), report.CatalogUsageOptions{
			IncludeZero:       includeZero,
			SortBy:            sortBy,
			DetailedResources: detailed,
		})
		if err != nil {
			return fmt.Errorf("catalog usage report failed: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}

		s := result.Summary
		fmt.Println("\n=== Catalog Usage ===")
		for _, row := range result.Items {
			fmt.Printf("%-40s deployments=%d resources=%d success_rate=%.2f%%\n", row.Name, row.DeploymentCount, row.ResourceCount, row.SuccessRate)
		}
		fmt.Printf("Catalog Items: %d (active %d)\n", s.TotalCatalogItems, s.ActiveItems)
		fmt.Printf("Deployments: %d (linked %d, unlinked %d)\n", s.TotalDeployments, s.CatalogLinked, s.Unlinked)
		fmt.Printf("Resources: %d\n", s.TotalResources)
		printWarning(result.Warning)

		rt.logger.Info("Catalog usage report completed",
			zap.Int("items", s.TotalCatalogItems),
			zap.Int("deployments", s.TotalDeployments),
			zap.Duration("execution_time", time.Since(start)),
		)
		return nil
	},
}

var resourcesUsageCmd = &cobra.Command{
	Use:   "resources-usage",
	Short: "Resource usage per deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("detailed")
		sortBy, _ := cmd.Flags().GetString("sort-by")
		groupBy, _ := cmd.Flags().GetString("group-by")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		start := time.Now()

		result, err := rt.reportService().ResourcesUsage(cmd.Context(), report.ResourcesUsageOptions{
			DetailedResources: detailed,
			SortBy:            sortBy,
			GroupBy:           groupBy,
		})
		if err != nil {
			return fmt.Errorf("resources usage report failed: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}

		s := result.Summary
		fmt.Println("\n=== Resources Usage ===")
		for _, g := range result.Groups {
			fmt.Printf("%-40s deployments=%d resources=%d (%.2f%%)\n", g.Label, g.DeploymentCount, g.ResourceCount, g.Percentage)
		}
		for _, tc := range result.ResourceTypes {
			fmt.Printf("  %-30s %d (%.2f%%)\n", tc.Type, tc.Count, tc.Percentage)
		}
		fmt.Printf("Mode: %s  Deployments: %d  Resources: %d  Avg: %.2f\n", s.Mode, s.TotalDeployments, s.TotalResources, s.AverageResourcesPerDeployment)
		printWarning(result.Warning)

		rt.logger.Info("Resources usage report completed",
			zap.Int("deployments", s.TotalDeployments),
			zap.Int("resources", s.TotalResources),
			zap.Duration("execution_time", time.Since(start)),
		)
		return nil
	},
}

var unsyncedCmd = &cobra.Command{
	Use:   "unsynced",
	Short: "Deployments without a catalog origin",
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("detailed")
		reason, _ := cmd.Flags().GetString("reason")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()
		start := time.Now()

		result, err := rt.reportService().Unsynced(cmd.Context(), report.UnsyncOptions{DetailedResources: detailed, Reason: reason})
		if err != nil {
			return fmt.Errorf("unsynced report failed: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}

		s := result.Summary
		fmt.Println("\n=== Unsynced Deployments ===")
		for _, d := range result.Deployments {
			fmt.Printf("%-38s %-28s %4dd  %s\n", d.DeploymentID, d.Reason, d.AgeDays, d.RecommendedAction)
		}
		for _, r := range reconcile.Reasons {
			if n := result.ReasonGroups[r]; n > 0 {
				fmt.Printf("  %-28s %d\n", r, n)
			}
		}
		fmt.Printf("Unsynced: %d of %d (%.2f%%)  Cost Impact: %s\n", s.UnsyncedCount, s.TotalDeployments, s.UnsyncedPercentage, s.EstimatedCostImpact.StringFixed(2))
		printWarning(result.Warning)

		rt.logger.Info("Unsynced report completed",
			zap.Int("unsynced", s.UnsyncedCount),
			zap.Int("total", s.TotalDeployments),
			zap.Duration("execution_time", time.Since(start)),
		)
		return nil
	},
}

func printWarning(w *resources.PartialResultWarning) {
	if w != nil {
		fmt.Printf("Warning: %s (%d deployments)\n", w.Message, len(w.DeploymentIDs))
	}
}

func init() {
	activityCmd.Flags().Int("days-back", reports.DefaultDaysBack, "Days to look back (1-365)")
	activityCmd.Flags().String("group-by", reports.DefaultGroupBy, "Bucket size: day, week, month or year")

	catalogUsageCmd.Flags().Bool("include-zero", false, "Include catalog items without deployments")
	catalogUsageCmd.Flags().String("sort-by", reports.DefaultCatalogUsageSort, "Sort by deployments, resources or name")
	catalogUsageCmd.Flags().Bool("detailed", false, "Fetch actual resource lists")

	resourcesUsageCmd.Flags().Bool("detailed", false, "Fetch actual resource lists")
	resourcesUsageCmd.Flags().String("sort-by", reports.DefaultResourcesUsageSort, "Sort by deployment-name, catalog-item, resource-count or status")
	resourcesUsageCmd.Flags().String("group-by", reports.DefaultResourcesUsageGroup, "Group by catalog-item, resource-type or deployment-status")

	unsyncedCmd.Flags().Bool("detailed", false, "Fetch actual resource lists")
	unsyncedCmd.Flags().String("reason", "", "Only deployments with this unsynced reason")

	reportCmd.AddCommand(activityCmd)
	reportCmd.AddCommand(catalogUsageCmd)
	reportCmd.AddCommand(resourcesUsageCmd)
	reportCmd.AddCommand(unsyncedCmd)
	RootCmd.AddCommand(reportCmd)
}
