package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestRequestLogger_DelegaErroresAlHandler(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "té")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
