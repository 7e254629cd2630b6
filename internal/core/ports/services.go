package ports

import (
	"context"

	"github.com/samirrijal/geofences/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishGeofenceCreated(ctx context.Context, record *domain.GeofenceRecord) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments a counter and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// Counter reads a counter; a missing key reads as 0.
	Counter(ctx context.Context, key string) (int64, error)
}
