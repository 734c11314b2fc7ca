package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/http/handlers"
	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Cars           *handlers.CarsHandler
	AdminConfig    *handlers.AdminConfigHandler
	Applications   *handlers.FinanceApplicationsHandler
	Public         *handlers.PublicHandler
	Activity       *handlers.ActivityHandler
	Upload         *handlers.UploadHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	public := app.Group("/public")
	public.Get("/cars", cfg.Public.ListCars)
	public.Get("/cars/:carId", cfg.Public.GetCar)
	public.Get("/finance-config", cfg.Public.FinanceConfig)
	public.Post("/finance-applications", cfg.Public.SubmitApplication)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/bootstrap", cfg.Auth.Bootstrap)
	authGroup.Post("/password/forgot", cfg.Auth.ForgotPassword)
	authGroup.Post("/password/reset", cfg.Auth.ResetPassword)
	authGroup.Get("/roles", cfg.Auth.Roles)

	authed := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireRoles())
	authed.Get("/me", cfg.Auth.Me)
	authed.Post("/password/change", cfg.Auth.ChangePassword)
	authed.Post("/admins", cfg.Auth.CreateAdmin)

	catalogRoles := auth.RequireRoles(domain.RoleSuzukiAdmin, domain.RoleSuperAdmin)
	cars := app.Group("/cars", cfg.AuthMiddleware.Handle, catalogRoles)
	cars.Get("/", cfg.Cars.List)
	cars.Post("/", cfg.Cars.Create)
	cars.Get("/:carId", cfg.Cars.Get)
	cars.Patch("/:carId", cfg.Cars.Update)
	cars.Delete("/:carId", cfg.Cars.Delete)
	cars.Patch("/:carId/price", cfg.Cars.UpdatePrice)
	cars.Patch("/:carId/availability", cfg.Cars.UpdateAvailability)
	cars.Patch("/:carId/featured", cfg.Cars.UpdateFeatured)
	// reorder must be registered before the images route so the literal
	// segment wins over a parameter match
	cars.Patch("/:carId/images/reorder", cfg.Cars.ReorderImages)
	cars.Patch("/:carId/images", cfg.Cars.UpsertImages)
	cars.Delete("/:carId/images/:imageId", cfg.Cars.DeleteImage)

	upload := app.Group("/upload", cfg.AuthMiddleware.Handle, catalogRoles)
	upload.Post("/images", cfg.Upload.UploadImage)

	configRoles := auth.RequireRoles(domain.RoleCredsureAdmin, domain.RoleSuperAdmin)
	adminConfig := app.Group("/admin-config", cfg.AuthMiddleware.Handle, configRoles)
	adminConfig.Get("/", cfg.AdminConfig.Get)
	adminConfig.Put("/interest-rate", cfg.AdminConfig.UpdateInterestRate)
	adminConfig.Post("/tenures", cfg.AdminConfig.AddTenure)
	adminConfig.Put("/tenures", cfg.AdminConfig.UpdateTenure)
	adminConfig.Delete("/tenures/:months", cfg.AdminConfig.DeleteTenure)
	adminConfig.Put("/calculator", cfg.AdminConfig.UpdateCalculator)
	adminConfig.Put("/content", cfg.AdminConfig.SaveContentDraft)
	adminConfig.Post("/content/publish", cfg.AdminConfig.PublishContent)

	reviewRoles := auth.RequireRoles(domain.RoleSuperAdmin, domain.RoleCredsureAdmin, domain.RoleSuzukiAdmin)
	applications := app.Group("/finance-applications", cfg.AuthMiddleware.Handle, reviewRoles)
	applications.Get("/", cfg.Applications.List)
	applications.Get("/:applicationId", cfg.Applications.Get)
	applications.Patch("/:applicationId/status", cfg.Applications.UpdateStatus)

	activity := app.Group("/activity", cfg.AuthMiddleware.Handle, configRoles)
	activity.Get("/", cfg.Activity.List)
}
