package ports

import (
	"context"

	"github.com/samirrijal/geofences/internal/core/domain"
)

// GeofenceRepository persists geofence records.
type GeofenceRepository interface {
	// Insert appends one row. It never checks for an existing fence_id.
	Insert(ctx context.Context, record *domain.GeofenceRecord) error
	// List returns every stored row in store order.
	List(ctx context.Context) ([]domain.GeofenceRecord, error)
}
