package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/samirrijal/geofences/internal/pkg/metrics"
)

type fakeStat struct{ acquired, idle, total int32 }

func (f fakeStat) AcquiredConns() int32 { return f.acquired }
func (f fakeStat) IdleConns() int32     { return f.idle }
func (f fakeStat) TotalConns() int32    { return f.total }

func TestUpdateDBPoolMetrics(t *testing.T) {
	metrics.UpdateDBPoolMetrics(fakeStat{acquired: 2, idle: 3, total: 5})

	if v := testutil.ToFloat64(metrics.DBPoolConnsAcquired); v != 2 {
		t.Errorf("expected 2 acquired, got %v", v)
	}
	if v := testutil.ToFloat64(metrics.DBPoolConnsIdle); v != 3 {
		t.Errorf("expected 3 idle, got %v", v)
	}
	if v := testutil.ToFloat64(metrics.DBPoolConnsOpen); v != 5 {
		t.Errorf("expected 5 open, got %v", v)
	}
}

func TestHandler_ServesExposition(t *testing.T) {
	refreshed := false
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(metrics.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", metrics.Handler(func() { refreshed = true }))

	if _, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !refreshed {
		t.Error("expected refresh hook to run before the scrape")
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `geofences_http_requests_total{method="GET",path="/ping",status="200"}`) {
		t.Errorf("expected request counter for /ping in exposition")
	}
}
