package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/resources"
	"catalog-insights/core/utils"
)

// Catalog usage orderings.
const (
	SortByDeployments = "deployments"
	SortByResources   = "resources"
	SortByName        = "name"
)

// CatalogUsageOptions parameterizes BuildCatalogUsage.
type CatalogUsageOptions struct {
	IncludeZero       bool   `json:"include_zero"`
	SortBy            string `json:"sort_by" validate:"oneof=deployments resources name"`
	DetailedResources bool   `json:"detailed"`

	// Aggregation tunes resource fetching. Its Mode is set from DetailedResources.
	Aggregation resources.Options `json:"-" validate:"-"`
}

// CatalogUsageRow is the usage of one catalog item.
type CatalogUsageRow struct {
	CatalogItemID   string         `json:"catalog_item_id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	DeploymentCount int            `json:"deployment_count"`
	ResourceCount   int            `json:"resource_count"`
	Successful      int            `json:"successful"`
	Failed          int            `json:"failed"`
	InProgress      int            `json:"in_progress"`
	SuccessRate     float64        `json:"success_rate"`
	StatusBreakdown map[string]int `json:"status_breakdown"`

	// MatchStrategies counts how the deployments were linked to the item.
	MatchStrategies map[reconcile.Strategy]int `json:"match_strategies"`

	// ResourceDataComplete is false when some deployments' resources could not be fetched.
	ResourceDataComplete bool `json:"resource_data_complete"`
}

// CatalogUsageSummary totals a catalog usage report.
type CatalogUsageSummary struct {
	TotalCatalogItems           int     `json:"total_catalog_items"`
	ActiveItems                 int     `json:"active_items"`
	TotalDeployments            int     `json:"total_deployments"`
	CatalogLinked               int     `json:"catalog_linked"`
	Unlinked                    int     `json:"unlinked"`
	TotalResources              int     `json:"total_resources"`
	AvgDeploymentsPerActiveItem float64 `json:"avg_deployments_per_active_item"`
}

// CatalogUsageReport is the deployment and resource usage per catalog item.
type CatalogUsageReport struct {
	Summary CatalogUsageSummary            `json:"summary"`
	Items   []CatalogUsageRow              `json:"items"`
	Warning *resources.PartialResultWarning `json:"warning,omitempty"`
}

// BuildCatalogUsage links deployments to catalog items and reports the usage
// of every item with at least one deployment, plus idle items when IncludeZero is set.
// Resource counts cover catalog-linked deployments only.
func BuildCatalogUsage(ctx context.Context, deployments []models.Deployment, matcher *reconcile.Matcher, fetcher resources.Fetcher, opts CatalogUsageOptions) (*CatalogUsageReport, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	matcher = matcherOrEmpty(matcher)
	index := matcher.Index()

	type group struct {
		row *CatalogUsageRow
		ids []string
	}
	groups := make(map[string]*group)
	var linked []models.Deployment

	for i, res := range matcher.MatchAll(deployments) {
		if !res.Matched() {
			continue
		}
		d := deployments[i]
		linked = append(linked, d)

		id := res.CatalogItemID()
		g, ok := groups[id]
		if !ok {
			item, _ := index.ByID(id)
			g = &group{row: newUsageRow(item)}
			groups[id] = g
		}
		g.ids = append(g.ids, d.ID)

		row := g.row
		row.DeploymentCount++
		row.StatusBreakdown[d.Status]++
		row.MatchStrategies[res.Strategy]++
		switch {
		case models.IsSuccessful(d.Status):
			row.Successful++
		case models.IsFailed(d.Status):
			row.Failed++
		case models.IsInProgress(d.Status):
			row.InProgress++
		}
	}

	stats, err := resources.Aggregate(ctx, linked, fetcher, aggregationOptions(opts.Aggregation, opts.DetailedResources))
	if err != nil {
		return nil, fmt.Errorf("catalog usage: %w", err)
	}

	report := &CatalogUsageReport{Items: []CatalogUsageRow{}, Warning: stats.Warning}
	for _, g := range groups {
		g.row.ResourceCount, g.row.ResourceDataComplete = stats.Sum(g.ids)
		g.row.SuccessRate = utils.Percent(g.row.Successful, g.row.DeploymentCount)
		report.Items = append(report.Items, *g.row)
	}

	if opts.IncludeZero {
		for _, item := range index.Items() {
			if _, ok := groups[item.ID]; ok {
				continue
			}
			row := newUsageRow(item)
			row.ResourceDataComplete = true
			report.Items = append(report.Items, *row)
		}
	}

	sortUsageRows(report.Items, opts.SortBy)

	report.Summary = SummarizeCatalogUsage(report.Items, len(deployments), len(linked))
	return report, nil
}

// SummarizeCatalogUsage derives the summary of rows. total is the number of
// deployments considered and linked the number matched to a catalog item.
// TotalResources is the sum of the rows' resource counts.
func SummarizeCatalogUsage(rows []CatalogUsageRow, total, linked int) CatalogUsageSummary {
	s := CatalogUsageSummary{
		TotalCatalogItems: len(rows),
		TotalDeployments:  total,
		CatalogLinked:     linked,
		Unlinked:          total - linked,
	}
	activeDeployments := 0
	for _, row := range rows {
		s.TotalResources += row.ResourceCount
		if row.DeploymentCount > 0 {
			s.ActiveItems++
			activeDeployments += row.DeploymentCount
		}
	}
	s.AvgDeploymentsPerActiveItem = utils.Ratio(activeDeployments, s.ActiveItems)
	return s
}

func newUsageRow(item models.CatalogItem) *CatalogUsageRow {
	return &CatalogUsageRow{
		CatalogItemID:   item.ID,
		Name:            item.Name,
		Type:            item.Type,
		StatusBreakdown: map[string]int{},
		MatchStrategies: map[reconcile.Strategy]int{},
	}
}

// sortUsageRows orders counts descending and names ascending. Ties fall back
// to name, then id, so the order is total.
func sortUsageRows(rows []CatalogUsageRow, sortBy string) {
	byName := func(a, b CatalogUsageRow) bool {
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.CatalogItemID < b.CatalogItemID
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch sortBy {
		case SortByDeployments:
			if a.DeploymentCount != b.DeploymentCount {
				return a.DeploymentCount > b.DeploymentCount
			}
		case SortByResources:
			if a.ResourceCount != b.ResourceCount {
				return a.ResourceCount > b.ResourceCount
			}
		}
		return byName(a, b)
	})
}
