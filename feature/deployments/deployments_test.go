package deployments

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-insights/core/apperror"
	"catalog-insights/core/models"
	"catalog-insights/core/platform"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPlatform struct {
	mock.Mock
}

func (m *mockPlatform) ListDeployments(ctx context.Context, filter platform.DeploymentFilter) ([]models.Deployment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Deployment), args.Error(1)
}

func (m *mockPlatform) FetchResources(ctx context.Context, id string) ([]models.Resource, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Resource), args.Error(1)
}

func setup(t *testing.T) (*fiber.App, *mockPlatform) {
	t.Helper()
	p := new(mockPlatform)
	feature := NewFeature(p, zap.NewNop())
	assert.Equal(t, "deployments", feature.Name())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, p
}

func TestHandleList(t *testing.T) {
	app, p := setup(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := platform.DeploymentFilter{ProjectID: "p1", Status: "CREATE_SUCCESSFUL", Search: "web"}
	p.On("ListDeployments", mock.Anything, filter).Return([]models.Deployment{
		{ID: "d1", Name: "web-1", CreatedAt: base},
		{ID: "d2", Name: "web-2", CreatedAt: base.Add(time.Hour)},
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/deployments?project=p1&status=CREATE_SUCCESSFUL&search=web", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []models.Deployment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "d2", list[0].ID)
	p.AssertExpectations(t)
}

func TestHandleResources(t *testing.T) {
	app, p := setup(t)
	p.On("FetchResources", mock.Anything, "d1").Return([]models.Resource{
		{ID: "r1", Name: "vm-1", Type: "Cloud.Machine", DeploymentID: "d1"},
	}, nil)
	p.On("FetchResources", mock.Anything, "missing").
		Return([]models.Resource(nil), apperror.NewUpstreamError("fetch resources", 404, errors.New("not found")))

	resp, err := app.Test(httptest.NewRequest("GET", "/deployments/d1/resources", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []models.Resource
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, "Cloud.Machine", list[0].Type)

	resp, err = app.Test(httptest.NewRequest("GET", "/deployments/missing/resources", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestService_ResourcesBlankID(t *testing.T) {
	_, err := NewService(new(mockPlatform), nil).Resources(context.Background(), "")
	assert.True(t, apperror.IsValidation(err))
}
