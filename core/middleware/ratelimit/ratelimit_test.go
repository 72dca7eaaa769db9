package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"library-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(l *Limiter) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{}))
	app.Post("/sync", l.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusAccepted) })
	return app
}

func post(t *testing.T, app *fiber.App, user string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/sync", nil)
	if user != "" {
		req.Header.Set(auth.UserIDHeader, user)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestLimiter_PerUserBudget(t *testing.T) {
	l := New(Config{PerHour: 3}, zap.NewNop())
	defer l.Stop()
	app := newApp(l)

	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusAccepted, post(t, app, "u1"))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, post(t, app, "u1"))

	// other users have their own bucket
	assert.Equal(t, fiber.StatusAccepted, post(t, app, "u2"))
	assert.Equal(t, 2, l.Count())
}

func TestLimiter_RetryAfter(t *testing.T) {
	l := New(Config{PerHour: 1}, zap.NewNop())
	defer l.Stop()
	app := newApp(l)

	assert.Equal(t, fiber.StatusAccepted, post(t, app, "u1"))

	req := httptest.NewRequest("POST", "/sync", nil)
	req.Header.Set(auth.UserIDHeader, "u1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "3600", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestLimiter_Cleanup(t *testing.T) {
	l := New(Config{PerHour: 5}, zap.NewNop())
	defer l.Stop()

	l.get("u1")
	l.cleanup(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 0, l.Count())
}
