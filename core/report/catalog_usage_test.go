package report

import (
	"context"
	"testing"

	"catalog-insights/core/apperror"
	"catalog-insights/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogUsage_Fast(t *testing.T) {
	report, err := BuildCatalogUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, CatalogUsageOptions{
		SortBy: SortByDeployments,
	})
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	c1, c2 := report.Items[0], report.Items[1]

	assert.Equal(t, "c1", c1.CatalogItemID)
	assert.Equal(t, 2, c1.DeploymentCount)
	assert.Equal(t, 5, c1.ResourceCount)
	assert.Equal(t, 1, c1.Successful)
	assert.Equal(t, 1, c1.Failed)
	assert.Equal(t, 50.0, c1.SuccessRate)
	assert.Equal(t, map[string]int{"CREATE_SUCCESSFUL": 1, "CREATE_FAILED": 1}, c1.StatusBreakdown)
	assert.Equal(t, map[reconcile.Strategy]int{reconcile.StrategyDirectID: 1, reconcile.StrategyExactName: 1}, c1.MatchStrategies)
	assert.True(t, c1.ResourceDataComplete)

	assert.Equal(t, "c2", c2.CatalogItemID)
	assert.Equal(t, 1, c2.DeploymentCount)
	assert.Equal(t, 100.0, c2.SuccessRate)

	assert.Equal(t, CatalogUsageSummary{
		TotalCatalogItems:           2,
		ActiveItems:                 2,
		TotalDeployments:            6,
		CatalogLinked:               3,
		Unlinked:                    3,
		TotalResources:              10,
		AvgDeploymentsPerActiveItem: 1.5,
	}, report.Summary)
	assert.Nil(t, report.Warning)
}

func TestBuildCatalogUsage_IncludeZero(t *testing.T) {
	report, err := BuildCatalogUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, CatalogUsageOptions{
		IncludeZero: true,
		SortBy:      SortByName,
	})
	require.NoError(t, err)

	require.Len(t, report.Items, 3)
	assert.Equal(t, []string{"c3", "c1", "c2"}, []string{
		report.Items[0].CatalogItemID, report.Items[1].CatalogItemID, report.Items[2].CatalogItemID,
	})
	assert.Equal(t, 0, report.Items[0].DeploymentCount)
	assert.Equal(t, 0.0, report.Items[0].SuccessRate)

	zero := 0
	for _, row := range report.Items {
		if row.DeploymentCount == 0 {
			zero++
		}
	}
	assert.Equal(t, report.Summary.TotalCatalogItems, report.Summary.ActiveItems+zero)
	assert.Equal(t, 3, report.Summary.TotalCatalogItems)
	assert.Equal(t, 2, report.Summary.ActiveItems)
}

func TestBuildCatalogUsage_SortByResourcesTiesOnName(t *testing.T) {
	report, err := BuildCatalogUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, CatalogUsageOptions{
		SortBy: SortByResources,
	})
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	assert.Equal(t, 5, report.Items[0].ResourceCount)
	assert.Equal(t, 5, report.Items[1].ResourceCount)
	assert.Equal(t, "Ubuntu Server", report.Items[0].Name)
}

func TestBuildCatalogUsage_DetailedPartialFailure(t *testing.T) {
	opts := CatalogUsageOptions{SortBy: SortByDeployments, DetailedResources: true, Aggregation: quickAggregation()}

	report, err := BuildCatalogUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), fixtureFetcher("d3"), opts)
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	assert.Equal(t, 3, report.Items[0].ResourceCount)
	assert.True(t, report.Items[0].ResourceDataComplete)
	assert.Equal(t, 0, report.Items[1].ResourceCount)
	assert.False(t, report.Items[1].ResourceDataComplete)

	require.NotNil(t, report.Warning)
	assert.Equal(t, []string{"d3"}, report.Warning.DeploymentIDs)
	assert.Equal(t, 3, report.Summary.TotalResources)
}

func TestBuildCatalogUsage_Empty(t *testing.T) {
	report, err := BuildCatalogUsage(context.Background(), nil, nil, nil, CatalogUsageOptions{
		SortBy: SortByDeployments, IncludeZero: true,
	})
	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.Equal(t, CatalogUsageSummary{}, report.Summary)
}

func TestBuildCatalogUsage_InvalidSort(t *testing.T) {
	_, err := BuildCatalogUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, CatalogUsageOptions{
		SortBy: "popularity",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
