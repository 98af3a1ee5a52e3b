package handler

import (
	"database/sql"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vidconv/internal/apperr"
	"vidconv/internal/service"
)

// claimsPayload is the structured response body of POST /validate.
type claimsPayload struct {
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
	Iat      int64  `json:"iat"`
	Admin    bool   `json:"admin"`
}

// RegisterAuthRoutes attaches the auth service HTTP surface to the app.
func RegisterAuthRoutes(app *fiber.App, db *sql.DB, svc service.AuthService) {
	app.Post("/login", Login(svc))
	app.Post("/validate", Validate(svc))
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
}

// Login exchanges HTTP Basic credentials for a signed token.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return writeAppError(c, apperr.Newf(apperr.KindMissingCredentials, "no basic credentials"))
		}

		signed, err := svc.Login(c.UserContext(), username, password)
		if err != nil {
			return writeAppError(c, err)
		}
		return c.Status(fiber.StatusOK).SendString(signed)
	}
}

// Validate decodes a bearer token into its claims.
func Validate(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := svc.Validate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return writeAppError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(claimsPayload{
			Username: claims.Username,
			Exp:      claims.ExpiresAt.Unix(),
			Iat:      claims.IssuedAt.Unix(),
			Admin:    claims.Admin,
		})
	}
}

// parseBasicAuth decodes an "Authorization: Basic base64(user:pass)" header.
func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}
