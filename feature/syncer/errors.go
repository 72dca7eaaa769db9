package syncer

import (
	"errors"
	"strconv"

	"library-sync/feature/catalog"
	"library-sync/feature/library"
	"library-sync/feature/platform"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a run-fatal error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, platform.ErrUnknownPlatform), errors.Is(err, platform.ErrSyncNotSupported):
		return fiber.StatusBadRequest
	case errors.Is(err, library.ErrNotConnected), errors.Is(err, ErrNoReport):
		return fiber.StatusNotFound
	case errors.Is(err, ErrSyncInProgress), errors.Is(err, library.ErrConnectionInactive):
		return fiber.StatusConflict
	case errors.Is(err, platform.ErrQuotaExceeded):
		return fiber.StatusTooManyRequests
	case errors.Is(err, platform.ErrAuthExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, platform.ErrUpstreamUnavailable), errors.Is(err, catalog.ErrCatalogUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// errorBody is the JSON body for err. Quota errors carry the retry details.
func errorBody(err error) fiber.Map {
	body := fiber.Map{"error": err.Error()}
	var qe *platform.QuotaExceededError
	if errors.As(err, &qe) {
		body["remaining"] = qe.Remaining
		body["reset_at"] = qe.ResetAt
		body["minutes_until_reset"] = qe.MinutesUntilReset
	}
	return body
}

func writeError(c *fiber.Ctx, err error) error {
	var qe *platform.QuotaExceededError
	if errors.As(err, &qe) {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(qe.MinutesUntilReset*60))
	}
	return c.Status(statusFor(err)).JSON(errorBody(err))
}
