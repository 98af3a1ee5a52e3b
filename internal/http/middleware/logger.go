package middleware

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON object per line.
// Fields: request_id (set by the RequestID middleware), service, method,
// path, status, latency in milliseconds, and response bytes.
// Each request marshals its own entry and writes through the log package,
// which serializes concurrent writers.
func Logger(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)

		entry := map[string]any{
			"request_id": rid,
			"service":    service,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Milliseconds()),
			"bytes":      len(c.Response().Body()),
		}
		if b, jerr := json.Marshal(entry); jerr == nil {
			log.SetFlags(0)
			log.Println(string(b))
		}

		return err
	}
}
