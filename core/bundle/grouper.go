package bundle

import (
	"regexp"
	"sort"
	"strconv"

	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/report"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// UnsyncedKey is the key of the unsynced bundle.
const UnsyncedKey = "unsynced_deployments"

// Key returns the export key of a catalog item: its name and id joined by an
// underscore, with every non-alphanumeric character replaced by an underscore.
func Key(item models.CatalogItem) string {
	return unsafeKeyChars.ReplaceAllString(item.Name+"_"+item.ID, "_")
}

// Bundle holds the deployments linked to one catalog item.
type Bundle struct {
	Key             string              `json:"key"`
	CatalogItem     models.CatalogItem  `json:"catalog_item"`
	DeploymentCount int                 `json:"deployment_count"`
	ResourceCount   int                 `json:"resource_count"`
	Deployments     []models.Deployment `json:"deployments"`
}

// UnsyncedDeployment is a deployment tagged with why it could not be linked.
type UnsyncedDeployment struct {
	models.Deployment
	UnsyncedReason reconcile.UnsyncedReason `json:"unsynced_reason"`
}

// UnsyncedBundle holds the deployments without a catalog origin.
type UnsyncedBundle struct {
	Key             string                           `json:"key"`
	DeploymentCount int                              `json:"deployment_count"`
	ReasonGroups    map[reconcile.UnsyncedReason]int `json:"reason_groups"`
	Deployments     []UnsyncedDeployment             `json:"deployments"`
}

// ExportBundle is the partitioned deployment set.
type ExportBundle struct {
	Bundles []Bundle `json:"bundles"`

	// Unsynced is nil unless unsynced deployments were requested.
	Unsynced *UnsyncedBundle `json:"unsynced,omitempty"`

	// Summary mirrors the catalog usage summary, with estimated resource counts.
	Summary report.CatalogUsageSummary `json:"summary"`
}

// Group partitions deployments by their matched catalog item. Every
// deployment lands in exactly one bundle; unsynced ones are dropped unless
// includeUnsynced is set. A nil matcher links nothing.
func Group(deployments []models.Deployment, matcher *reconcile.Matcher, includeUnsynced bool) *ExportBundle {
	if matcher == nil {
		matcher = reconcile.NewMatcher(nil)
	}

	byItem := make(map[string]*Bundle)
	unsynced := &UnsyncedBundle{
		Key:          UnsyncedKey,
		ReasonGroups: map[reconcile.UnsyncedReason]int{},
		Deployments:  []UnsyncedDeployment{},
	}
	linked := 0

	for i, res := range matcher.MatchAll(deployments) {
		d := deployments[i]
		if !res.Matched() {
			unsynced.ReasonGroups[res.Reason()]++
			unsynced.Deployments = append(unsynced.Deployments, UnsyncedDeployment{Deployment: d, UnsyncedReason: res.Reason()})
			continue
		}

		linked++
		id := res.CatalogItemID()
		b, ok := byItem[id]
		if !ok {
			item, _ := matcher.Index().ByID(id)
			b = &Bundle{Key: Key(item), CatalogItem: item}
			byItem[id] = b
		}
		b.DeploymentCount++
		if d.ResourceCount != nil && *d.ResourceCount > 0 {
			b.ResourceCount += *d.ResourceCount
		}
		b.Deployments = append(b.Deployments, d)
	}

	out := &ExportBundle{Bundles: make([]Bundle, 0, len(byItem))}
	rows := make([]report.CatalogUsageRow, 0, len(byItem))
	for _, b := range byItem {
		sortDeployments(b.Deployments, func(i int) models.Deployment { return b.Deployments[i] })
		out.Bundles = append(out.Bundles, *b)
		rows = append(rows, report.CatalogUsageRow{
			CatalogItemID:   b.CatalogItem.ID,
			DeploymentCount: b.DeploymentCount,
			ResourceCount:   b.ResourceCount,
		})
	}
	sort.Slice(out.Bundles, func(i, j int) bool {
		if out.Bundles[i].Key != out.Bundles[j].Key {
			return out.Bundles[i].Key < out.Bundles[j].Key
		}
		return out.Bundles[i].CatalogItem.ID < out.Bundles[j].CatalogItem.ID
	})
	uniqueKeys(out.Bundles)

	if includeUnsynced {
		sortDeployments(unsynced.Deployments, func(i int) models.Deployment { return unsynced.Deployments[i].Deployment })
		unsynced.DeploymentCount = len(unsynced.Deployments)
		out.Unsynced = unsynced
	}

	out.Summary = report.SummarizeCatalogUsage(rows, len(deployments), linked)
	return out
}

// uniqueKeys suffixes colliding keys with _2, _3 and so on. bundles must be
// sorted by key then catalog item id, so the lowest id keeps the plain key.
// A suffix never reuses another bundle's key or the unsynced key.
func uniqueKeys(bundles []Bundle) {
	base := make(map[string]bool, len(bundles))
	for _, b := range bundles {
		base[b.Key] = true
	}
	taken := map[string]bool{UnsyncedKey: true}
	for i := range bundles {
		key := bundles[i].Key
		for n := 2; taken[key]; n++ {
			candidate := bundles[i].Key + "_" + strconv.Itoa(n)
			if !base[candidate] {
				key = candidate
			}
		}
		taken[key] = true
		bundles[i].Key = key
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Key < bundles[j].Key })
}

// sortDeployments orders by creation time, then id.
func sortDeployments[T any](list []T, at func(int) models.Deployment) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := at(i), at(j)
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
