package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated exact-match list, typically the
	// local dev servers.
	AllowedOrigins string
}

// CORS returns a Fiber handler that allows browser-extension origins and
// the configured dev origins. Credentials allowed.
func CORS(cfg CORSConfig) fiber.Handler {
	allowed := map[string]bool{}
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		o = strings.TrimSpace(strings.ToLower(o))
		if o != "" {
			allowed[o] = true
		}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// No origin (e.g. same-origin or tools): allow
		if origin == "" {
			return c.Next()
		}
		if originAllowed(allowed, origin) {
			setCORSHeaders(c, origin)
			if c.Method() == fiber.MethodOptions {
				return c.SendStatus(fiber.StatusNoContent)
			}
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error": fiber.Map{
				"message":    "Not allowed by CORS",
				"statusCode": 403,
				"details":    fiber.Map{},
			},
		})
	}
}

func originAllowed(allowed map[string]bool, origin string) bool {
	lower := strings.ToLower(origin)
	// Extension pages carry an opaque per-install origin.
	if strings.HasPrefix(lower, "chrome-extension://") || strings.HasPrefix(lower, "moz-extension://") {
		return true
	}
	if strings.HasPrefix(lower, "http://localhost:") || strings.HasPrefix(lower, "http://127.0.0.1:") {
		return true
	}
	return allowed[lower]
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Headers", "Content-Type")
	c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
}
