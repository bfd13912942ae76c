package observability

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("test")
	m.RecordTransition("next", nil)
	m.RecordTransition("next", errors.New("invalid"))
	m.RecordUpload("photos", nil)
	m.RecordSubmission(nil)
	m.SetActiveWizards(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("next", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("next", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("photos", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.wizards))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordSubmission(nil)
	})
}

func TestRequestLoggerAndHandler(t *testing.T) {
	m := NewMetrics("test")
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/ping", "GET", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "test_http_requests_total")
}
