package report

import (
	"context"
	"errors"
	"time"

	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/resources"

	"github.com/shopspring/decimal"
)

var fixtureNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return fixtureNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func fixtureMatcher() *reconcile.Matcher {
	return reconcile.NewMatcher(reconcile.NewIndex([]models.CatalogItem{
		{ID: "c1", Name: "Ubuntu Server", Type: models.CatalogTypeBlueprint},
		{ID: "c2", Name: "Windows Server", Type: models.CatalogTypeBlueprint, BlueprintID: models.Ptr("bp-win")},
		{ID: "c3", Name: "Postgres Database", Type: models.CatalogTypeWorkflow},
	}))
}

func expense(v string) *models.Expense {
	d := decimal.RequireFromString(v)
	return &models.Expense{Total: &d}
}

// fixtureDeployments covers every strategy and three unsynced reasons:
// d1 direct_id c1, d2 exact_name c1, d3 blueprint_id c2, d4 catalog_item_deleted,
// d5 missing_catalog_references, d6 catalog_name_mismatch.
func fixtureDeployments() []models.Deployment {
	return []models.Deployment{
		{ID: "d1", Name: "dep-001", Status: "CREATE_SUCCESSFUL", ProjectID: "p1", CreatedAt: daysAgo(1),
			CatalogItemID: models.Ptr("c1"), ResourceCount: models.Ptr(3)},
		{ID: "d2", Name: "dep-002", Status: "CREATE_FAILED", ProjectID: "p2", CreatedAt: daysAgo(2),
			CatalogItemName: models.Ptr("ubuntu server"), ResourceCount: models.Ptr(2)},
		{ID: "d3", Name: "dep-003", Status: "CREATE_SUCCESSFUL", ProjectID: "p1", CreatedAt: daysAgo(10),
			BlueprintID: models.Ptr("bp-win"), ResourceCount: models.Ptr(5)},
		{ID: "d4", Name: "dep-004", Status: "CREATE_SUCCESSFUL", ProjectID: "p1", CreatedAt: daysAgo(20),
			CatalogItemID: models.Ptr("missing"), ResourceCount: models.Ptr(1), Expense: expense("12.50")},
		{ID: "d5", Name: "dep-005", Status: "CREATE_INPROGRESS", ProjectID: "p3", CreatedAt: daysAgo(40),
			Expense: expense("7.25")},
		{ID: "d6", Name: "dep-006", Status: "CREATE_SUCCESSFUL", ProjectID: "p2", CreatedAt: daysAgo(3),
			CatalogItemName: models.Ptr("Totally Different"), ResourceCount: models.Ptr(0)},
	}
}

// fixtureFetcher serves typed resources and fails for the ids in failing.
func fixtureFetcher(failing ...string) resources.Fetcher {
	data := map[string][]models.Resource{
		"d1": {{ID: "r1", Type: "Cloud.Machine"}, {ID: "r2", Type: "Cloud.Disk"}},
		"d2": {{ID: "r3", Type: "Cloud.Machine"}},
		"d3": {{ID: "r4", Type: "Cloud.Machine"}, {ID: "r5", Type: "Cloud.Network"}, {ID: "r6", Type: "Cloud.Disk"}},
		"d4": {{ID: "r7", Type: "Cloud.Machine"}},
		"d5": {{ID: "r8", Type: "Cloud.Network"}, {ID: "r9", Type: "Cloud.Network"}},
	}
	fail := make(map[string]bool, len(failing))
	for _, id := range failing {
		fail[id] = true
	}
	return resources.FetcherFunc(func(ctx context.Context, id string) ([]models.Resource, error) {
		if fail[id] {
			return nil, errors.New("platform unavailable")
		}
		return data[id], nil
	})
}

func quickAggregation() resources.Options {
	return resources.Options{MaxAttempts: 1, RetryInterval: time.Millisecond, Timeout: time.Second}
}
