package http

import (
	"time"

	natsadapter "github.com/samirrijal/geofences/internal/adapters/nats"
	"github.com/samirrijal/geofences/internal/adapters/postgres"
	"github.com/samirrijal/geofences/internal/adapters/valkey"
	"github.com/samirrijal/geofences/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// DB, Events and Cache are optional and only consulted by readiness and metrics.
type Dependencies struct {
	Geofences      *usecases.GeofenceService
	DB             *postgres.DB
	Events         *natsadapter.Publisher
	Cache          *valkey.Cache
	RequestTimeout time.Duration
}

func (d *Dependencies) requestTimeout() time.Duration {
	if d.RequestTimeout > 0 {
		return d.RequestTimeout
	}
	return 15 * time.Second
}
