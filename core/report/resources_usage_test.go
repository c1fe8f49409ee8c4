package report

import (
	"context"
	"testing"

	"catalog-insights/core/apperror"
	"catalog-insights/core/models"
	"catalog-insights/core/reconcile"
	"catalog-insights/core/resources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupKeys(groups []ResourceGroup) []string {
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}

func rowIDs(rows []DeploymentResourceRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.DeploymentID)
	}
	return ids
}

func TestBuildResourcesUsage_ByCatalogItem(t *testing.T) {
	report, err := BuildResourcesUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, ResourcesUsageOptions{
		SortBy: SortByResourceCount, GroupBy: GroupByCatalogItem,
	})
	require.NoError(t, err)

	assert.Equal(t, resources.ModeFast, report.Summary.Mode)
	assert.Equal(t, 6, report.Summary.TotalDeployments)
	assert.Equal(t, 11, report.Summary.TotalResources)
	assert.Equal(t, 2, report.Summary.DeploymentsWithoutResources)

	assert.Equal(t, []string{"c1", "c2", GroupKeyUnsynced}, groupKeys(report.Groups))
	c1 := report.Groups[0]
	assert.Equal(t, "Ubuntu Server", c1.Label)
	assert.Equal(t, 2, c1.DeploymentCount)
	assert.Equal(t, 5, c1.ResourceCount)
	assert.Equal(t, 45.45, c1.Percentage)
	assert.Equal(t, []string{"d1", "d2"}, rowIDs(c1.Deployments))

	unsynced := report.Groups[2]
	assert.Equal(t, 3, unsynced.DeploymentCount)
	assert.Equal(t, 1, unsynced.ResourceCount)
	assert.Equal(t, []string{"d4", "d5", "d6"}, rowIDs(unsynced.Deployments))
}

func TestBuildResourcesUsage_ByResourceTypeFast(t *testing.T) {
	report, err := BuildResourcesUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, ResourcesUsageOptions{
		SortBy: SortByDeploymentName, GroupBy: GroupByResourceType,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{resources.UnknownType, GroupKeyNone}, groupKeys(report.Groups))
	assert.Equal(t, 11, report.Groups[0].ResourceCount)
	assert.Equal(t, 100.0, report.Groups[0].Percentage)
	assert.Equal(t, []string{"d5", "d6"}, rowIDs(report.Groups[1].Deployments))
	assert.Empty(t, report.ResourceTypes)
}

func TestBuildResourcesUsage_ByResourceTypeDetailed(t *testing.T) {
	report, err := BuildResourcesUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), fixtureFetcher("d4"), ResourcesUsageOptions{
		DetailedResources: true,
		SortBy:            SortByDeploymentName,
		GroupBy:           GroupByResourceType,
		Aggregation:       quickAggregation(),
	})
	require.NoError(t, err)

	// d1 2, d2 1, d3 3, d5 2; d4 failed, d6 has none
	assert.Equal(t, 8, report.Summary.TotalResources)
	require.Len(t, report.ResourceTypes, 3)
	assert.Equal(t, resources.TypeCount{Type: "Cloud.Machine", Count: 3, Percentage: 37.5}, report.ResourceTypes[0])

	assert.Equal(t, "Cloud.Network", report.ResourceTypes[1].Type)

	assert.Equal(t, []string{"Cloud.Machine", "Cloud.Network", "Cloud.Disk", GroupKeyNone, GroupKeyUnavailable}, groupKeys(report.Groups))
	network := report.Groups[1]
	assert.Equal(t, 3, network.ResourceCount)
	assert.Equal(t, []string{"d3", "d5"}, rowIDs(network.Deployments))

	require.NotNil(t, report.Warning)
	assert.Equal(t, []string{"d4"}, report.Warning.DeploymentIDs)
}

func TestBuildResourcesUsage_ByStatus(t *testing.T) {
	report, err := BuildResourcesUsage(context.Background(), fixtureDeployments(), fixtureMatcher(), nil, ResourcesUsageOptions{
		SortBy: SortByCatalogItem, GroupBy: GroupByDeploymentStatus,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"CREATE_SUCCESSFUL", "CREATE_FAILED", "CREATE_INPROGRESS"}, groupKeys(report.Groups))
	assert.Equal(t, 9, report.Groups[0].ResourceCount)
	// linked rows first by catalog item name, unsynced last
	assert.Equal(t, []string{"d1", "d3", "d4", "d6"}, rowIDs(report.Groups[0].Deployments))
}

func TestBuildResourcesUsage_Empty(t *testing.T) {
	report, err := BuildResourcesUsage(context.Background(), nil, nil, nil, ResourcesUsageOptions{
		SortBy: SortByStatus, GroupBy: GroupByCatalogItem,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.TotalResources)
	assert.Equal(t, 0.0, report.Summary.AverageResourcesPerDeployment)
	assert.Empty(t, report.Groups)
}

func TestBuildResourcesUsage_Validation(t *testing.T) {
	tests := []ResourcesUsageOptions{
		{SortBy: "size", GroupBy: GroupByCatalogItem},
		{SortBy: SortByStatus, GroupBy: "project"},
	}
	for _, opts := range tests {
		_, err := BuildResourcesUsage(context.Background(), fixtureDeployments(), nil, nil, opts)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestBuildResourcesUsage_CatalogItemNamedLikeReservedGroup(t *testing.T) {
	matcher := reconcile.NewMatcher(reconcile.NewIndex([]models.CatalogItem{{ID: GroupKeyUnsynced, Name: "unsynced"}}))
	deps := []models.Deployment{
		{ID: "d1", Name: "linked", CatalogItemID: models.Ptr(GroupKeyUnsynced), ResourceCount: models.Ptr(2)},
		{ID: "d2", Name: "orphan", ResourceCount: models.Ptr(2)},
	}

	report, err := BuildResourcesUsage(context.Background(), deps, matcher, nil, ResourcesUsageOptions{
		SortBy: SortByDeploymentName, GroupBy: GroupByCatalogItem,
	})
	require.NoError(t, err)

	require.Len(t, report.Groups, 2)
	assert.Equal(t, GroupKeyUnsynced, report.Groups[0].Key)
	assert.False(t, report.Groups[0].Reserved)
	assert.Equal(t, []string{"d1"}, rowIDs(report.Groups[0].Deployments))
	assert.True(t, report.Groups[1].Reserved)
	assert.Equal(t, []string{"d2"}, rowIDs(report.Groups[1].Deployments))
}
