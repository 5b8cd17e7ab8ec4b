package httpserver

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/config"
)

func TestInitFiberServer_Health(t *testing.T) {
	app := InitFiberServer("test-app", config.ServerConfig{ReadTimeout: 5, WriteTimeout: 5, IdleTimeout: 30})

	for _, path := range []string{"/manage/health", "/manage/ready"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestInitFiberServer_RequestID(t *testing.T) {
	app := InitFiberServer("test-app", config.ServerConfig{})

	var seen string
	app.Get("/ping", func(c *fiber.Ctx) error {
		seen = RequestID(c)
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))

	_, err = uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestInitFiberServer_RecoversPanics(t *testing.T) {
	app := InitFiberServer("test-app", config.ServerConfig{})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestInitFiberServer_CORS(t *testing.T) {
	app := InitFiberServer("test-app", config.ServerConfig{})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
