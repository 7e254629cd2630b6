package postgres

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/geofences/internal/core/domain"
	"github.com/samirrijal/geofences/internal/core/ports"
	"github.com/samirrijal/geofences/internal/pkg/telemetry"
)

var _ ports.GeofenceRepository = (*GeofenceRepo)(nil)

// GeofenceRepo implements ports.GeofenceRepository.
type GeofenceRepo struct {
	db *DB
}

func NewGeofenceRepo(db *DB) *GeofenceRepo {
	return &GeofenceRepo{db: db}
}

func (r *GeofenceRepo) Insert(ctx context.Context, record *domain.GeofenceRecord) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "GeofenceRepo.Insert",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "fences"),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	conn, err := r.db.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
		INSERT INTO fences (fence_id, name, notes, created_at, coordinates)
		VALUES ($1, $2, $3, $4, $5)
	`, record.FenceID, record.Name, record.Notes, record.CreatedAt, record.Coordinates)
	return err
}

func (r *GeofenceRepo) List(ctx context.Context) (records []domain.GeofenceRecord, err error) {
	ctx, span := telemetry.StartSpan(ctx, "GeofenceRepo.List",
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "fences"),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	conn, err := r.db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT fence_id, name, notes, created_at, coordinates
		FROM fences
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records = []domain.GeofenceRecord{}
	for rows.Next() {
		var g domain.GeofenceRecord
		if err := rows.Scan(&g.FenceID, &g.Name, &g.Notes, &g.CreatedAt, &g.Coordinates); err != nil {
			return nil, err
		}
		records = append(records, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("geofences.count", len(records)))
	return records, nil
}
