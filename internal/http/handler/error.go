package handler

import (
	"github.com/gofiber/fiber/v2"

	"vidconv/internal/apperr"
)

// writeAppError renders a classified error at the boundary: status and plain
// text body come from the error kind (or a verbatim upstream override);
// internal causes never reach the client.
func writeAppError(c *fiber.Ctx, err error) error {
	ae := apperr.From(err)
	return c.Status(ae.HTTPStatus()).SendString(ae.ExternalMessage())
}

// ErrorHandler returns a Fiber global error handler that keeps unhandled
// failures on the same plain-text surface as the endpoint responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusNotFound:
			return c.Status(status).SendString("Not Found")
		case fiber.StatusMethodNotAllowed:
			return c.Status(status).SendString("Method Not Allowed")
		default:
			return c.Status(status).SendString("Internal Server Error")
		}
	}
}
