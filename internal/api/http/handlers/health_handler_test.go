package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-catering/storefront/internal/observability"
)

type probe struct {
	err   error
	stats map[string]any
}

func (p probe) Ping(context.Context) error { return p.err }

func (p probe) Stats() map[string]any { return p.stats }

func readyBody(t *testing.T, deps map[string]Pinger) (int, map[string]any) {
	t.Helper()
	h := NewHealthHandler("storefront", "test", deps, observability.NewMetrics())
	app := fiber.New()
	app.Get("/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestReadyReportsDependencyStats(t *testing.T) {
	status, body := readyBody(t, map[string]Pinger{
		"postgres": probe{stats: map[string]any{"total_conns": 2}},
		"redis":    probe{},
	})
	assert.Equal(t, fiber.StatusOK, status)

	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["redis"])
	pg := deps["postgres"].(map[string]any)
	assert.Equal(t, "ok", pg["status"])
	assert.EqualValues(t, 2, pg["stats"].(map[string]any)["total_conns"])
}

func TestReadyFailsWhenDependencyDown(t *testing.T) {
	status, body := readyBody(t, map[string]Pinger{"redis": probe{err: errors.New("connection refused")}})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	detail := body["error"].(map[string]any)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", detail["code"])
	assert.Equal(t, "connection refused", detail["details"].(map[string]any)["redis"])
}
