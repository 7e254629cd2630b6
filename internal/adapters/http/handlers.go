package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/geofences/internal/core/domain"
)

// CreateResponse is the body returned by a successful create.
type CreateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DecodedRecord is a GeofenceRecord whose coordinates were parsed back into JSON.
type DecodedRecord struct {
	FenceID     *string `json:"fence_id"`
	Name        *string `json:"name"`
	Notes       *string `json:"notes"`
	CreatedAt   *string `json:"created_at"`
	Coordinates any     `json:"coordinates"`
}

// CreateGeofenceHandler appends one geofence record.
func CreateGeofenceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := parseCreateRequest(c.Body())
		if err != nil {
			return errFromDomain(c, err)
		}

		if _, err := deps.Geofences.Create(c.UserContext(), in); err != nil {
			return errFromDomain(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(CreateResponse{
			Status:  "success",
			Message: "Geofence created and stored",
		})
	}
}

// ListGeofencesHandler returns every stored record. Coordinates are returned
// as stored text unless ?decode=true is given.
func ListGeofencesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := deps.Geofences.List(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}

		if !c.QueryBool("decode", false) {
			return c.JSON(records)
		}

		decoded, err := decodeRecords(records)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(decoded)
	}
}

func decodeRecords(records []domain.GeofenceRecord) ([]DecodedRecord, error) {
	out := make([]DecodedRecord, 0, len(records))
	for _, r := range records {
		d := DecodedRecord{
			FenceID:   r.FenceID,
			Name:      r.Name,
			Notes:     r.Notes,
			CreatedAt: r.CreatedAt,
		}
		if r.Coordinates != nil {
			v, err := domain.DecodeCoordinates(*r.Coordinates)
			if err != nil {
				return nil, err
			}
			d.Coordinates = v
		}
		out = append(out, d)
	}
	return out, nil
}
