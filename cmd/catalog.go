package cmd

import (
	"fmt"

	"catalog-insights/core/platform"
	"catalog-insights/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect catalog items and request deployments",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		items, err := catalog.NewService(rt.platform, rt.logger).ListItems(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list catalog items: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(items)
		}

		fmt.Println("\n=== Catalog Items ===")
		for _, it := range items {
			fmt.Printf("%-38s %-10s %s\n", it.ID, it.Type, it.Name)
		}
		rt.logger.Info("Catalog items listed", zap.Int("total", len(items)))
		return nil
	},
}

var catalogRequestCmd = &cobra.Command{
	Use:   "request <catalog-item-id>",
	Short: "Request a deployment of a catalog item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		project, _ := cmd.Flags().GetString("project")
		version, _ := cmd.Flags().GetString("version")
		reason, _ := cmd.Flags().GetString("reason")
		inputs, _ := cmd.Flags().GetStringToString("input")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		req := platform.DeploymentRequest{
			DeploymentName: name,
			ProjectID:      project,
			Version:        version,
			Reason:         reason,
		}
		if len(inputs) > 0 {
			req.Inputs = make(map[string]any, len(inputs))
			for k, v := range inputs {
				req.Inputs[k] = v
			}
		}

		result, err := catalog.NewService(rt.platform, rt.logger).RequestDeployment(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("deployment request failed: %w", err)
		}
		if jsonOutput(cmd) {
			return printJSON(result)
		}
		fmt.Printf("Deployment %s requested (id %s)\n", result.DeploymentName, result.DeploymentID)
		return nil
	},
}

func init() {
	catalogRequestCmd.Flags().String("name", "", "Deployment name")
	catalogRequestCmd.Flags().String("project", "", "Project id")
	catalogRequestCmd.Flags().String("version", "", "Catalog item version")
	catalogRequestCmd.Flags().String("reason", "", "Request reason")
	catalogRequestCmd.Flags().StringToString("input", nil, "Request input as key=value, repeatable")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogRequestCmd)
	RootCmd.AddCommand(catalogCmd)
}
