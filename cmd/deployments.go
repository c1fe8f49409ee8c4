package cmd

import (
	"fmt"

	"catalog-insights/core/platform"
	"catalog-insights/feature/deployments"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deploymentsCmd represents the deployments command
var deploymentsCmd = &cobra.Command{
	Use:   "deployments",
	Short: "Inspect deployments and their resources",
}

var deploymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deployments, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		list, err := deployments.NewService(rt.platform, rt.logger).List(cmd.Context(), platform.DeploymentFilter{
			ProjectID: project,
			Status:    status,
			Search:    search,
		})
		if err != nil {
			return fmt.Errorf("failed to list deployments: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(list)
		}

		fmt.Println("\n=== Deployments ===")
		for _, d := range list {
			fmt.Printf("%-38s %-20s %s  %s\n", d.ID, d.Status, d.CreatedAt.Format("2006-01-02"), d.Name)
		}
		rt.logger.Info("Deployments listed", zap.Int("total", len(list)))
		return nil
	},
}

var deploymentsResourcesCmd = &cobra.Command{
	Use:   "resources <deployment-id>",
	Short: "List the resources of a deployment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		list, err := deployments.NewService(rt.platform, rt.logger).Resources(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch resources: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(list)
		}

		fmt.Printf("\n=== Resources of %s ===\n", args[0])
		for _, r := range list {
			fmt.Printf("%-38s %-24s %s\n", r.ID, r.Type, r.Name)
		}
		return nil
	},
}

func init() {
	deploymentsListCmd.Flags().String("project", "", "Only deployments of this project")
	deploymentsListCmd.Flags().String("status", "", "Only deployments with this status")
	deploymentsListCmd.Flags().String("search", "", "Free text search")

	deploymentsCmd.AddCommand(deploymentsListCmd)
	deploymentsCmd.AddCommand(deploymentsResourcesCmd)
	RootCmd.AddCommand(deploymentsCmd)
}
