package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "feesetu_backend/internals/features/users/auth/controller"
	"feesetu_backend/internals/middlewares"
)

// AuthPublicRoutes: credential endpoints, no token required.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	auth := r.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
	auth.Post("/refresh-token", ctl.RefreshToken)
}

// AuthPrivateRoutes: any authenticated role.
func AuthPrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	auth := r.Group("/auth")
	auth.Post("/logout", ctl.Logout)
	auth.Get("/me", ctl.Me)
}
