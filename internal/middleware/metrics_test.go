package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsStatusLabel(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/unavailable", func(c *fiber.Ctx) error {
		return fiber.ErrServiceUnavailable
	})

	t.Run("written responses keep their status", func(t *testing.T) {
		before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/ok", "200"))

		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/ok", "200"))
		assert.Equal(t, before+1, after)
	})

	// Errors returned from handlers are written by the app error handler
	// after the middleware unwinds, so the label must come from the error
	// itself.
	t.Run("propagating errors count under the error status", func(t *testing.T) {
		before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/unavailable", "503"))

		resp, err := app.Test(httptest.NewRequest("GET", "/unavailable", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/unavailable", "503"))
		assert.Equal(t, before+1, after)

		stale := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/unavailable", "200"))
		assert.Zero(t, stale)
	})
}
