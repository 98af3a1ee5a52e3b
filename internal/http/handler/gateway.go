package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"vidconv/internal/apperr"
	"vidconv/internal/authclient"
	"vidconv/internal/service"
)

// errExactlyOneFile is the gateway's file-count rule rendered per contract.
var errExactlyOneFile = &apperr.Error{
	Kind:            apperr.KindBadRequest,
	MessageOverride: "Exactly 1 file required",
}

// RegisterGatewayRoutes attaches the gateway HTTP surface to the app.
// The download path is served by a separate component and has no route here.
func RegisterGatewayRoutes(app *fiber.App, auth authclient.Client, uploads service.UploadService) {
	app.Post("/login", GatewayLogin(auth))
	app.Post("/upload", UploadVideo(auth, uploads))
	app.Get("/healthz", LivenessProbe())
}

// GatewayLogin forwards Basic credentials to the auth service and relays the
// response verbatim.
func GatewayLogin(auth authclient.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signed, err := auth.Login(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return writeAppError(c, err)
		}
		return c.Status(fiber.StatusOK).SendString(signed)
	}
}

// UploadVideo runs the intake pipeline: delegated validation, privilege
// check, exactly-one-file rule, then store+publish. No storage or broker
// call happens before authorization succeeds.
func UploadVideo(auth authclient.Client, uploads service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Validate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return writeAppError(c, err)
		}
		if !claims.Admin {
			return writeAppError(c, apperr.Newf(apperr.KindNotAuthorized, "user %q lacks upload privilege", claims.Username))
		}

		form, err := c.MultipartForm()
		if err != nil {
			return writeAppError(c, errExactlyOneFile)
		}
		var files []*multipart.FileHeader
		for _, fhs := range form.File {
			files = append(files, fhs...)
		}
		if len(files) != 1 {
			return writeAppError(c, errExactlyOneFile)
		}

		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return writeAppError(c, apperr.Newf(apperr.KindInternal, "open upload: %v", err))
		}
		defer f.Close()

		contentType := fh.Header.Get(fiber.HeaderContentType)
		if contentType == "" {
			contentType = fiber.MIMEOctetStream
		}

		if _, err := uploads.Upload(c.UserContext(), f, fh.Filename, contentType, fh.Size, claims.Username); err != nil {
			return writeAppError(c, err)
		}
		return c.Status(fiber.StatusOK).SendString("Success!")
	}
}
