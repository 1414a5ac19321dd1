package bootstrap

import (
	"github.com/gofiber/fiber/v2"

	"assetly-backend/internal/app"
	"assetly-backend/internal/config"
)

// New loads config and creates the Fiber app. Embedding hosts use this
// package instead of reaching into internal.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	fiberApp, _, _, err := app.CreateApp(cfg)
	return fiberApp, err
}
