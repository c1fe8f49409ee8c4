package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("up") })
	app.Use(New(cfg))
	app.Get("/reports/activity", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{ApiKey: "secret"})

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		status int
	}{
		{"missing key", "/reports/activity", "", "", fiber.StatusUnauthorized},
		{"wrong key", "/reports/activity", HeaderName, "nope", fiber.StatusUnauthorized},
		{"api key header", "/reports/activity", HeaderName, "secret", fiber.StatusOK},
		{"bearer token", "/reports/activity", fiber.HeaderAuthorization, "Bearer secret", fiber.StatusOK},
		{"wrong scheme", "/reports/activity", fiber.HeaderAuthorization, "Basic secret", fiber.StatusUnauthorized},
		{"route before middleware", "/health", "", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/activity", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
