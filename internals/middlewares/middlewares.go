package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares installs the base middleware chain shared by every route.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
