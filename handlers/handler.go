package handlers

import (
	"errors"
	"strconv"

	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// errorJSON writes err with the status its type maps to. Server-side
// failures are logged and replaced with fallback so internals do not leak.
func errorJSON(c *fiber.Ctx, err error, fallback string) error {
	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("🔥 request failed")
		return c.Status(status).JSON(fiber.Map{"error": fallback})
	}

	body := fiber.Map{"error": err.Error()}
	var verr apperrors.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	return c.Status(status).JSON(body)
}

// errorText is errorJSON for the legacy plain-text endpoints.
func errorText(c *fiber.Ctx, err error, fallback string) error {
	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("🔥 request failed")
		return c.Status(status).SendString(fallback)
	}
	return c.Status(status).SendString(err.Error())
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(field, "must be a positive integer")
	}
	return uint(id), nil
}
