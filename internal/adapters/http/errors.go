package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/geofences/internal/core/domain"
	"github.com/samirrijal/geofences/internal/pkg/logging"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errFromDomain maps the domain error taxonomy onto HTTP responses.
// MalformedInputError is a client error; anything else, StorageError included, is a 500.
func errFromDomain(c *fiber.Ctx, err error) error {
	var malformed *domain.MalformedInputError
	if errors.As(err, &malformed) {
		return errBadRequest(c, malformed.Error())
	}

	log := logging.FromContext(c.UserContext())
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		log.Error("geofence store failure", slog.String("op", storageErr.Op), slog.Any("error", storageErr.Err))
		return errInternal(c, "geofence store unavailable")
	}

	log.Error("unexpected error", slog.Any("error", err))
	return errInternal(c, err.Error())
}

// notFoundHandler answers unknown routes with the APIError envelope.
func notFoundHandler(c *fiber.Ctx) error {
	return errNotFound(c, "no route for "+c.Method()+" "+c.Path())
}

var errDisconnected = errors.New("disconnected")
