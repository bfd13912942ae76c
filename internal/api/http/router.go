package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bursa-register/internal/api/http/handlers"
	"github.com/spec-kit/bursa-register/internal/auth"
)

// RouteConfig bundles dependencies for the BFF routes.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Wizards        *handlers.WizardHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadLimiter  *UploadLimiter
	Metrics        fiber.Handler
}

// RegisterRoutes wires the BFF routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	registerHealth(app, cfg.Health, cfg.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Get("/signin", cfg.Auth.SignIn)
	authGroup.Get("/callback", cfg.Auth.Callback)
	authGroup.Post("/signout", cfg.AuthMiddleware.Handle, cfg.Auth.SignOut)

	api := app.Group("/api")
	api.Get("/categories", cfg.Catalog.Categories)
	api.Get("/price-tiers", cfg.Catalog.PriceTiers)
	api.Get("/operating-hours/default", cfg.Catalog.DefaultOperatingHours)
	api.Get("/variant", cfg.Catalog.Variant)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/status", cfg.Wizards.Status)

	wizards := protected.Group("/wizards")
	wizards.Post("/", cfg.Wizards.Start)
	wizards.Get("/:id", cfg.Wizards.Get)
	wizards.Delete("/:id", cfg.Wizards.Discard)
	wizards.Patch("/:id/draft", cfg.Wizards.UpdateDraft)
	wizards.Put("/:id/online", cfg.Wizards.SetOnline)
	wizards.Post("/:id/next", cfg.Wizards.Next)
	wizards.Post("/:id/back", cfg.Wizards.Back)
	wizards.Post("/:id/submit", cfg.Wizards.Submit)

	uploads := []fiber.Handler{}
	if cfg.UploadLimiter != nil {
		uploads = append(uploads, cfg.UploadLimiter.Handle)
	}
	wizards.Post("/:id/logo", append(uploads, cfg.Wizards.UploadLogo)...)
	wizards.Delete("/:id/logo", cfg.Wizards.RemoveLogo)
	wizards.Post("/:id/photos", append(uploads, cfg.Wizards.UploadPhotos)...)
	wizards.Delete("/:id/photos/:index", cfg.Wizards.RemovePhoto)
}

// DirectoryRouteConfig bundles dependencies for the directory API routes.
type DirectoryRouteConfig struct {
	Health         *handlers.HealthHandler
	Submissions    *handlers.SubmissionsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        fiber.Handler
}

// RegisterDirectoryRoutes wires the status and submission service routes.
func RegisterDirectoryRoutes(app *fiber.App, cfg DirectoryRouteConfig) {
	registerHealth(app, cfg.Health, cfg.Metrics)

	submissions := app.Group("/api/submissions", cfg.AuthMiddleware.Handle)
	submissions.Get("/", cfg.Submissions.Status)
	submissions.Post("/", cfg.Submissions.Create)
	submissions.Get("/:id", cfg.Submissions.Get)
}

func registerHealth(app *fiber.App, health *handlers.HealthHandler, metrics fiber.Handler) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	if metrics != nil {
		app.Get("/metrics", metrics)
	}
}
