package domain

// GeofenceRecord is one stored row of the fences table.
// Every column is nullable; Coordinates holds the serialized shape exactly as stored.
type GeofenceRecord struct {
	FenceID     *string `json:"fence_id"`
	Name        *string `json:"name"`
	Notes       *string `json:"notes"`
	CreatedAt   *string `json:"created_at"`
	Coordinates *string `json:"coordinates"`
}

// NewGeofence is the caller-supplied input of a create request.
// Coordinates is the raw JSON of shape.coordinates, nil when absent.
type NewGeofence struct {
	FenceID     *string
	Name        *string
	Notes       *string
	CreatedAt   *string
	Coordinates []byte
}

// DisplayName returns the record name or "" when unset.
func (r *GeofenceRecord) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}
