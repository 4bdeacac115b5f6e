package rayid_test

import (
	"net/http/httptest"
	"testing"

	"manatan-gateway/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() (*fiber.App, *string) {
	app := fiber.New()
	var seen string
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		seen, _ = c.Locals(rayid.LocalsKey).(string)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &seen
}

func TestNew_GeneratesRayID(t *testing.T) {
	app, seen := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(rayid.HeaderName)
	require.NotEmpty(t, header)
	assert.Equal(t, header, *seen)

	_, err = uuid.Parse(header)
	assert.NoError(t, err, "generated RayID should be a UUID")
}

func TestNew_PreservesClientRayID(t *testing.T) {
	app, seen := setupApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.HeaderName, "upstream-trace-7")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "upstream-trace-7", resp.Header.Get(rayid.HeaderName))
	assert.Equal(t, "upstream-trace-7", *seen)
}
