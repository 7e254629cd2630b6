package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readyTimeout = 3 * time.Second

// HealthHandler reports liveness and process uptime.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
			"version": "dev",
		})
	}
}

// readinessCheck probes one backend. A nil probe means the backend is not configured.
type readinessCheck struct {
	name     string
	required bool
	probe    func(ctx context.Context) error
}

func (d *Dependencies) readinessChecks() []readinessCheck {
	checks := []readinessCheck{
		{name: "database", required: true},
		{name: "nats"},
		{name: "cache"},
	}
	if d.DB != nil && d.DB.Pool != nil {
		checks[0].probe = d.DB.Pool.Ping
	}
	if d.Events != nil {
		checks[1].probe = func(context.Context) error {
			if !d.Events.IsConnected() {
				return errDisconnected
			}
			return nil
		}
	}
	if d.Cache != nil {
		checks[2].probe = d.Cache.Ping
	}
	return checks
}

// ReadyHandler probes the store, NATS and the cache. The store is required;
// NATS and the cache only fail readiness when configured and unreachable.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()

		results := make(map[string]string)
		ready := true

		for _, check := range deps.readinessChecks() {
			switch {
			case check.probe == nil:
				results[check.name] = "not configured"
				if check.required {
					ready = false
				}
			default:
				if err := check.probe(ctx); err != nil {
					results[check.name] = "error: " + err.Error()
					ready = false
				} else {
					results[check.name] = "ok"
				}
			}
		}

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"checks": results,
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
			"checks": results,
		})
	}
}
