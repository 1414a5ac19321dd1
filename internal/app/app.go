package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"assetly-backend/internal/analytics"
	"assetly-backend/internal/assets"
	"assetly-backend/internal/capture"
	"assetly-backend/internal/config"
	"assetly-backend/internal/health"
	"assetly-backend/internal/infrastructure/database"
	"assetly-backend/internal/insights"
	"assetly-backend/internal/middleware"
	"assetly-backend/internal/pkg/response"
	"assetly-backend/internal/settings"
	"assetly-backend/internal/valuation"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the opened DB and optional Redis client so the
// entry point can verify connections before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               10 * 1024 * 1024, // captured screenshots arrive base64-encoded
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	// Redis is optional; without REDIS_URL the request counters are off.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	app.Use(middleware.StatsMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = cfg.DatabasePath
	}
	db, err := database.Open(dsn)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	settingsService := &settings.Service{DB: db}
	if err := seedSettings(db, settingsService, cfg); err != nil {
		return nil, nil, nil, err
	}

	healthHandlers := &health.Handlers{Rdb: rdb, DB: &gormPinger{db: db}}
	app.Get("/", rootInfo)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	assetService := &assets.Service{DB: db}
	assetHandlers := &assets.Handlers{Service: assetService}
	assetGroup := app.Group("/api/v1/assets")
	assetGroup.Post("/create-asset", assetHandlers.CreateAsset)
	assetGroup.Get("/view-assets", assetHandlers.ViewAssets)
	assetGroup.Put("/update-asset/:id", assetHandlers.UpdateAsset)
	assetGroup.Delete("/remove-asset/:id", assetHandlers.RemoveAsset)
	assetGroup.Post("/clear-assets", assetHandlers.ClearAssets)
	assetGroup.Post("/import-assets", assetHandlers.ImportAssets)
	assetGroup.Get("/export-assets", assetHandlers.ExportAssets)

	settingsHandlers := &settings.Handlers{Service: settingsService}
	settingsGroup := app.Group("/api/v1/settings")
	settingsGroup.Get("/view-settings", settingsHandlers.ViewSettings)
	settingsGroup.Put("/update-settings", settingsHandlers.UpdateSettings)

	insightService := &insights.Service{
		Assets:   assetService,
		Settings: settingsService,
		Scores:   analytics.DefaultScoreConfig(),
	}
	insightHandlers := &insights.Handlers{Service: insightService}
	insightGroup := app.Group("/api/v1/insights")
	insightGroup.Get("/view-summary", insightHandlers.ViewSummary)
	insightGroup.Get("/view-trend", insightHandlers.ViewTrend)
	insightGroup.Get("/view-analysis", insightHandlers.ViewAnalysis)

	captureService := &capture.Service{OCR: &capture.OCRClient{}}
	captureHandlers := &capture.Handlers{Service: captureService, Settings: settingsService}
	captureGroup := app.Group("/api/v1/capture")
	captureGroup.Post("/capture-image", captureHandlers.CaptureImage)
	captureGroup.Post("/analyze-text", captureHandlers.AnalyzeText)

	valuationHandlers := &valuation.Handlers{Assets: assetService}
	app.Get("/api/v1/valuation/estimate-value/:id", valuationHandlers.EstimateValue)

	return app, db, rdb, nil
}

// seedSettings copies environment-provided API keys into an empty settings
// row, so a fresh install works without visiting the settings UI first.
func seedSettings(db *gorm.DB, svc *settings.Service, cfg *config.Config) error {
	if cfg.OCRAPIKey == "" && cfg.DeepSeekAPIKey == "" {
		return nil
	}
	ctx := context.Background()
	st, err := svc.Get(ctx)
	if err != nil {
		return err
	}
	in := settings.UpdateInput{}
	if st.OCRAPIKey == "" && cfg.OCRAPIKey != "" {
		in.OCRAPIKey = &cfg.OCRAPIKey
	}
	if st.DeepSeekAPIKey == "" && cfg.DeepSeekAPIKey != "" {
		in.DeepSeekAPIKey = &cfg.DeepSeekAPIKey
	}
	if in.OCRAPIKey == nil && in.DeepSeekAPIKey == nil {
		return nil
	}
	_, err = svc.Update(ctx, in)
	return err
}

func rootInfo(c *fiber.Ctx) error {
	return response.Success(c, "assetly-api", fiber.Map{
		"health": "/health/json",
		"api":    "/api/v1",
	}, nil)
}

// gormPinger adapts *gorm.DB to the health DBPinger.
type gormPinger struct {
	db *gorm.DB
}

func (p *gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
