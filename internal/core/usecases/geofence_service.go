package usecases

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/samirrijal/geofences/internal/core/domain"
	"github.com/samirrijal/geofences/internal/core/ports"
	"github.com/samirrijal/geofences/internal/pkg/logging"
	"github.com/samirrijal/geofences/internal/pkg/metrics"
)

// ListCacheKey prefixes the cache entries holding the serialized fence list.
// Entries are keyed by the list generation, see ListCacheKeyFor.
const ListCacheKey = "geofences:list"

// ListGenerationKey is the counter bumped by every create. A cached list is
// only ever served under the generation it was read at.
const ListGenerationKey = "geofences:list:gen"

// ListCacheKeyFor returns the cache key of the list read at generation gen.
func ListCacheKeyFor(gen int64) string {
	return ListCacheKey + ":" + strconv.FormatInt(gen, 10)
}

// DefaultListTTL is used when the service is built without an explicit TTL.
const DefaultListTTL = 30

// GeofenceService handles geofence storage business logic.
type GeofenceService struct {
	fences    ports.GeofenceRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
	listTTL   int
}

// NewGeofenceService creates a new GeofenceService. cache and publisher may be nil.
func NewGeofenceService(fences ports.GeofenceRepository, cache ports.CacheService, publisher ports.EventPublisher) *GeofenceService {
	return &GeofenceService{
		fences:    fences,
		cache:     cache,
		publisher: publisher,
		listTTL:   DefaultListTTL,
	}
}

// WithListTTL sets how long a cached list stays valid, in seconds.
func (s *GeofenceService) WithListTTL(seconds int) *GeofenceService {
	if seconds > 0 {
		s.listTTL = seconds
	}
	return s
}

// Create serializes the coordinates and appends one record.
func (s *GeofenceService) Create(ctx context.Context, in *domain.NewGeofence) (*domain.GeofenceRecord, error) {
	coords, err := domain.EncodeCoordinates(in.Coordinates)
	if err != nil {
		return nil, err
	}

	record := &domain.GeofenceRecord{
		FenceID:     in.FenceID,
		Name:        in.Name,
		Notes:       in.Notes,
		CreatedAt:   in.CreatedAt,
		Coordinates: &coords,
	}

	if err := s.fences.Insert(ctx, record); err != nil {
		metrics.StorageErrors.WithLabelValues("insert").Inc()
		return nil, &domain.StorageError{Op: "insert", Err: err}
	}
	metrics.GeofencesCreated.Inc()

	log := logging.FromContext(ctx)

	if s.cache != nil {
		s.invalidateList(ctx)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishGeofenceCreated(ctx, record); err != nil {
			log.Warn("publish geofence.created", "error", err)
		}
	}

	log.Info("geofence saved", "name", record.DisplayName(), "fence_id", deref(record.FenceID))
	return record, nil
}

// List returns every stored record. The result is never nil.
func (s *GeofenceService) List(ctx context.Context) ([]domain.GeofenceRecord, error) {
	log := logging.FromContext(ctx)

	// gen < 0 disables the cache for this call.
	gen := int64(-1)
	if s.cache != nil {
		g, err := s.cache.Counter(ctx, ListGenerationKey)
		if err != nil {
			log.Warn("read geofence list generation", "error", err)
		} else {
			gen = g
		}
	}

	if gen >= 0 {
		if data, err := s.cache.Get(ctx, ListCacheKeyFor(gen)); err == nil {
			var records []domain.GeofenceRecord
			if err := json.Unmarshal(data, &records); err == nil {
				metrics.CacheHits.WithLabelValues("list").Inc()
				return nonNil(records), nil
			}
		}
		metrics.CacheMisses.WithLabelValues("list").Inc()
	}

	records, err := s.fences.List(ctx)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("list").Inc()
		return nil, &domain.StorageError{Op: "list", Err: err}
	}
	records = nonNil(records)

	if gen >= 0 {
		s.fillList(ctx, gen, records)
	}

	log.Info("geofences retrieved", "count", len(records))
	return records, nil
}

// fillList caches records under gen unless a create moved the generation
// while the store was being read.
func (s *GeofenceService) fillList(ctx context.Context, gen int64, records []domain.GeofenceRecord) {
	now, err := s.cache.Counter(ctx, ListGenerationKey)
	if err != nil || now != gen {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, ListCacheKeyFor(gen), data, s.listTTL)
}

// invalidateList moves the list generation forward so no list cached
// before this point is served again. If the counter cannot be bumped the
// current generation's entry is dropped instead.
func (s *GeofenceService) invalidateList(ctx context.Context) {
	log := logging.FromContext(ctx)

	_, err := s.cache.Incr(ctx, ListGenerationKey)
	if err == nil {
		return
	}
	log.Warn("bump geofence list generation", "error", err)

	gen, err := s.cache.Counter(ctx, ListGenerationKey)
	if err != nil {
		log.Warn("invalidate geofence list cache", "error", err)
		return
	}
	if err := s.cache.Delete(ctx, ListCacheKeyFor(gen)); err != nil {
		log.Warn("invalidate geofence list cache", "error", err)
	}
}

func nonNil(records []domain.GeofenceRecord) []domain.GeofenceRecord {
	if records == nil {
		return []domain.GeofenceRecord{}
	}
	return records
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
