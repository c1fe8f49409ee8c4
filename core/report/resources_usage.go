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

// Resource usage orderings.
const (
	SortByDeploymentName = "deployment-name"
	SortByCatalogItem    = "catalog-item"
	SortByResourceCount  = "resource-count"
	SortByStatus         = "status"
)

// Resource usage groupings.
const (
	GroupByCatalogItem      = "catalog-item"
	GroupByResourceType     = "resource-type"
	GroupByDeploymentStatus = "deployment-status"
)

// Reserved group keys. Groups using them are flagged Reserved, so they never
// merge with a catalog item id or resource type spelled the same way.
const (
	GroupKeyUnsynced    = "unsynced"
	GroupKeyNone        = "none"
	GroupKeyUnavailable = "unavailable"
)

// ResourcesUsageOptions parameterizes BuildResourcesUsage.
type ResourcesUsageOptions struct {
	DetailedResources bool   `json:"detailed"`
	SortBy            string `json:"sort_by" validate:"oneof=deployment-name catalog-item resource-count status"`
	GroupBy           string `json:"group_by" validate:"oneof=catalog-item resource-type deployment-status"`

	// Aggregation tunes resource fetching. Its Mode is set from DetailedResources.
	Aggregation resources.Options `json:"-" validate:"-"`
}

// DeploymentResourceRow is the resource usage of one deployment.
type DeploymentResourceRow struct {
	DeploymentID    string         `json:"deployment_id"`
	DeploymentName  string         `json:"deployment_name"`
	Status          string         `json:"status"`
	ProjectID       string         `json:"project_id"`
	CatalogItemID   string         `json:"catalog_item_id,omitempty"`
	CatalogItemName string         `json:"catalog_item_name,omitempty"`
	ResourceCount   int            `json:"resource_count"`
	Available       bool           `json:"available"`
	ResourceTypes   map[string]int `json:"resource_types,omitempty"`
}

// ResourceGroup collects the deployment rows sharing a group key.
type ResourceGroup struct {
	Key   string `json:"key"`
	Label string `json:"label"`

	// Reserved marks the synthetic unsynced, none and unavailable groups.
	Reserved bool `json:"reserved,omitempty"`

	DeploymentCount int `json:"deployment_count"`

	// ResourceCount counts the resources attributed to the group. For
	// resource-type groups only the resources of that type are counted.
	ResourceCount int     `json:"resource_count"`
	Percentage    float64 `json:"percentage"`

	Deployments []DeploymentResourceRow `json:"deployments"`
}

// ResourcesUsageSummary totals a resource usage report.
type ResourcesUsageSummary struct {
	Mode                          resources.Mode `json:"mode"`
	TotalDeployments              int            `json:"total_deployments"`
	TotalResources                int            `json:"total_resources"`
	DeploymentsWithoutResources   int            `json:"deployments_without_resources"`
	DistinctResourceTypes         int            `json:"distinct_resource_types"`
	AverageResourcesPerDeployment float64        `json:"average_resources_per_deployment"`
}

// ResourcesUsageReport is the resource inventory of a deployment set.
type ResourcesUsageReport struct {
	Summary       ResourcesUsageSummary           `json:"summary"`
	ResourceTypes []resources.TypeCount           `json:"resource_types"`
	Groups        []ResourceGroup                 `json:"groups"`
	Warning       *resources.PartialResultWarning `json:"warning,omitempty"`
}

// BuildResourcesUsage reports the resources of every deployment, grouped and ordered as requested.
// Deployments without resources appear with a zero count.
func BuildResourcesUsage(ctx context.Context, deployments []models.Deployment, matcher *reconcile.Matcher, fetcher resources.Fetcher, opts ResourcesUsageOptions) (*ResourcesUsageReport, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	matcher = matcherOrEmpty(matcher)

	stats, err := resources.Aggregate(ctx, deployments, fetcher, aggregationOptions(opts.Aggregation, opts.DetailedResources))
	if err != nil {
		return nil, fmt.Errorf("resources usage: %w", err)
	}

	rows := make([]DeploymentResourceRow, 0, len(stats.PerDeployment))
	seen := make(map[string]struct{}, len(deployments))
	for _, d := range deployments {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}

		dr, _ := stats.For(d.ID)
		row := DeploymentResourceRow{
			DeploymentID:   d.ID,
			DeploymentName: d.Name,
			Status:         d.Status,
			ProjectID:      d.ProjectID,
			ResourceCount:  dr.Count,
			Available:      dr.Available,
			ResourceTypes:  dr.Types,
		}
		if res := matcher.Match(d); res.Matched() {
			row.CatalogItemID = res.CatalogItemID()
			if item, ok := matcher.Index().ByID(row.CatalogItemID); ok {
				row.CatalogItemName = item.Name
			}
		}
		rows = append(rows, row)
	}

	report := &ResourcesUsageReport{
		Summary: ResourcesUsageSummary{
			Mode:                          stats.Mode,
			TotalDeployments:              len(rows),
			TotalResources:                stats.TotalResources,
			DistinctResourceTypes:         len(stats.ByType),
			AverageResourcesPerDeployment: stats.AverageResourcesPerDeployment,
		},
		ResourceTypes: stats.ByType,
		Groups:        groupRows(rows, opts.GroupBy, stats.TotalResources),
		Warning:       stats.Warning,
	}
	for _, row := range rows {
		if row.Available && row.ResourceCount == 0 {
			report.Summary.DeploymentsWithoutResources++
		}
	}

	for i := range report.Groups {
		sortResourceRows(report.Groups[i].Deployments, opts.SortBy)
	}
	return report, nil
}

func groupRows(rows []DeploymentResourceRow, groupBy string, totalResources int) []ResourceGroup {
	type groupID struct {
		reserved bool
		key      string
	}
	groups := make(map[groupID]*ResourceGroup)
	add := func(reserved bool, key, label string, row DeploymentResourceRow, count int) {
		id := groupID{reserved: reserved, key: key}
		g, ok := groups[id]
		if !ok {
			g = &ResourceGroup{Key: key, Label: label, Reserved: reserved, Deployments: []DeploymentResourceRow{}}
			groups[id] = g
		}
		g.DeploymentCount++
		g.ResourceCount += count
		g.Deployments = append(g.Deployments, row)
	}

	for _, row := range rows {
		switch groupBy {
		case GroupByCatalogItem:
			if row.CatalogItemID == "" {
				add(true, GroupKeyUnsynced, GroupKeyUnsynced, row, row.ResourceCount)
			} else {
				add(false, row.CatalogItemID, row.CatalogItemName, row, row.ResourceCount)
			}
		case GroupByDeploymentStatus:
			status := row.Status
			if status == "" {
				status = resources.UnknownType
			}
			add(false, status, status, row, row.ResourceCount)
		case GroupByResourceType:
			switch {
			case !row.Available:
				add(true, GroupKeyUnavailable, GroupKeyUnavailable, row, 0)
			case row.ResourceCount == 0:
				add(true, GroupKeyNone, GroupKeyNone, row, 0)
			case len(row.ResourceTypes) == 0:
				add(false, resources.UnknownType, resources.UnknownType, row, row.ResourceCount)
			default:
				for t, n := range row.ResourceTypes {
					add(false, t, t, row, n)
				}
			}
		}
	}

	out := make([]ResourceGroup, 0, len(groups))
	for _, g := range groups {
		g.Percentage = utils.Percent(g.ResourceCount, totalResources)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceCount != out[j].ResourceCount {
			return out[i].ResourceCount > out[j].ResourceCount
		}
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return !out[i].Reserved && out[j].Reserved
	})
	return out
}

// sortResourceRows orders rows within a group. Every ordering falls back to
// deployment name, then id.
func sortResourceRows(rows []DeploymentResourceRow, sortBy string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch sortBy {
		case SortByCatalogItem:
			an, bn := strings.ToLower(a.CatalogItemName), strings.ToLower(b.CatalogItemName)
			if an != bn {
				// unsynced rows last
				if an == "" || bn == "" {
					return bn == ""
				}
				return an < bn
			}
		case SortByResourceCount:
			if a.ResourceCount != b.ResourceCount {
				return a.ResourceCount > b.ResourceCount
			}
		case SortByStatus:
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		}

		an, bn := strings.ToLower(a.DeploymentName), strings.ToLower(b.DeploymentName)
		if an != bn {
			return an < bn
		}
		return a.DeploymentID < b.DeploymentID
	})
}
