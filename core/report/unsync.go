package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/resources"
	"catalog-insights/core/utils"

	"github.com/shopspring/decimal"
)

// recommendations maps each unsynced reason to its remediation.
var recommendations = map[reconcile.UnsyncedReason]string{
	reconcile.ReasonMissingCatalogReferences: "tag the deployment with its catalog item or blueprint, or archive it if unused",
	reconcile.ReasonCatalogItemDeleted:       "link to a similar catalog item or archive",
	reconcile.ReasonBlueprintDeleted:         "republish the blueprint through a catalog item or migrate to a current blueprint",
	reconcile.ReasonCatalogNameMismatch:      "check for a renamed catalog item and update the deployment's catalog reference",
	reconcile.ReasonExternalCreation:         "review the deployment's origin and import it into the catalog or decommission it",
}

// RecommendedAction returns the remediation suggested for reason.
func RecommendedAction(reason reconcile.UnsyncedReason) string {
	if action, ok := recommendations[reason]; ok {
		return action
	}
	return "investigate the deployment's origin"
}

// UnsyncOptions parameterizes BuildUnsyncDiagnostics.
type UnsyncOptions struct {
	DetailedResources bool `json:"detailed"`

	// Reason restricts the report to one unsynced reason. Empty keeps all.
	Reason string `json:"reason" validate:"omitempty,oneof=missing_catalog_references catalog_item_deleted blueprint_deleted catalog_name_mismatch external_creation"`

	// Now anchors age computation. Zero means time.Now().
	Now time.Time `json:"-"`

	Aggregation resources.Options `json:"-" validate:"-"`
}

// UnsyncedDeployment is one deployment that could not be linked to a catalog item.
type UnsyncedDeployment struct {
	DeploymentID      string                   `json:"deployment_id"`
	Name              string                   `json:"name"`
	Status            string                   `json:"status"`
	ProjectID         string                   `json:"project_id"`
	CreatedAt         time.Time                `json:"created_at"`
	AgeDays           int                      `json:"age_days"`
	Reason            reconcile.UnsyncedReason `json:"reason"`
	RecommendedAction string                   `json:"recommended_action"`

	CatalogItemID   *string `json:"catalog_item_id,omitempty"`
	BlueprintID     *string `json:"blueprint_id,omitempty"`
	CatalogItemName *string `json:"catalog_item_name,omitempty"`

	// ResourceCount is set in detailed mode when the resources could be fetched.
	ResourceCount *int `json:"resource_count,omitempty"`

	Expense decimal.Decimal `json:"expense"`
}

// UnsyncSummary totals an unsynced diagnostics report.
type UnsyncSummary struct {
	TotalDeployments   int     `json:"total_deployments"`
	UnsyncedCount      int     `json:"unsynced_count"`
	UnsyncedPercentage float64 `json:"unsynced_percentage"`

	// TotalUnsyncedResources is only computed in detailed mode.
	TotalUnsyncedResources int `json:"total_unsynced_resources"`

	EstimatedCostImpact decimal.Decimal `json:"estimated_cost_impact"`
}

// UnsyncReport diagnoses the deployments without a catalog origin.
type UnsyncReport struct {
	Summary      UnsyncSummary                    `json:"summary"`
	ReasonGroups map[reconcile.UnsyncedReason]int `json:"reason_groups"`
	Deployments  []UnsyncedDeployment             `json:"deployments"`
	Warning      *resources.PartialResultWarning  `json:"warning,omitempty"`
}

// BuildUnsyncDiagnostics reports the unsynced deployments, optionally
// restricted to one reason. Counts and cost are computed over the retained deployments.
func BuildUnsyncDiagnostics(ctx context.Context, deployments []models.Deployment, matcher *reconcile.Matcher, fetcher resources.Fetcher, opts UnsyncOptions) (*UnsyncReport, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	matcher = matcherOrEmpty(matcher)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	report := &UnsyncReport{
		Summary:      UnsyncSummary{TotalDeployments: len(deployments), EstimatedCostImpact: decimal.Zero},
		ReasonGroups: map[reconcile.UnsyncedReason]int{},
		Deployments:  []UnsyncedDeployment{},
	}

	var unsynced []models.Deployment
	for i, res := range matcher.MatchAll(deployments) {
		if res.Matched() {
			continue
		}
		reason := res.Reason()
		if opts.Reason != "" && string(reason) != opts.Reason {
			continue
		}

		d := deployments[i]
		unsynced = append(unsynced, d)
		report.ReasonGroups[reason]++
		report.Summary.EstimatedCostImpact = report.Summary.EstimatedCostImpact.Add(d.ExpenseTotal())
		report.Deployments = append(report.Deployments, UnsyncedDeployment{
			DeploymentID:      d.ID,
			Name:              d.Name,
			Status:            d.Status,
			ProjectID:         d.ProjectID,
			CreatedAt:         d.CreatedAt,
			AgeDays:           ageDays(d.CreatedAt, now),
			Reason:            reason,
			RecommendedAction: RecommendedAction(reason),
			CatalogItemID:     d.CatalogItemID,
			BlueprintID:       d.BlueprintID,
			CatalogItemName:   d.CatalogItemName,
			Expense:           d.ExpenseTotal(),
		})
	}

	report.Summary.UnsyncedCount = len(report.Deployments)
	report.Summary.UnsyncedPercentage = utils.Percent(report.Summary.UnsyncedCount, report.Summary.TotalDeployments)

	if opts.DetailedResources && len(unsynced) > 0 {
		stats, err := resources.Aggregate(ctx, unsynced, fetcher, aggregationOptions(opts.Aggregation, true))
		if err != nil {
			return nil, fmt.Errorf("unsync diagnostics: %w", err)
		}
		report.Summary.TotalUnsyncedResources = stats.TotalResources
		report.Warning = stats.Warning
		for i := range report.Deployments {
			if dr, ok := stats.For(report.Deployments[i].DeploymentID); ok && dr.Available {
				report.Deployments[i].ResourceCount = models.Ptr(dr.Count)
			}
		}
	}

	rank := make(map[reconcile.UnsyncedReason]int, len(reconcile.Reasons))
	for i, r := range reconcile.Reasons {
		rank[r] = i
	}
	sort.SliceStable(report.Deployments, func(i, j int) bool {
		a, b := report.Deployments[i], report.Deployments[j]
		if a.Reason != b.Reason {
			return rank[a.Reason] < rank[b.Reason]
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.DeploymentID < b.DeploymentID
	})

	return report, nil
}

// ageDays returns the whole days elapsed since created, never negative.
func ageDays(created, now time.Time) int {
	if created.IsZero() || created.After(now) {
		return 0
	}
	return int(now.Sub(created).Hours() / 24)
}
