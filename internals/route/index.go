package route

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feesetu_backend/internals/configs"
	authService "feesetu_backend/internals/features/users/auth/service"
	authMiddleware "feesetu_backend/internals/middlewares/auth"
	"feesetu_backend/internals/middlewares/features"
	routeDetails "feesetu_backend/internals/route/details"
)

// SetupRoutes wires every route group:
//
//	/api/public — no token (auth, plan catalog, gateway webhooks)
//	/api/u      — any authenticated user (logout, me)
//	/api/p      — parent role
//	/api/a      — platform admin role
//	/api/i      — institution staff role (token carries institution scope)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authJWT := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret: configs.JWTSecret,
		BlacklistChecker: func(raw string) (bool, error) {
			return authService.IsTokenBlacklisted(db, raw)
		},
		AllowCookieFallback: true,
	})

	// webhook signature verification needs the raw server key
	midtransServerKey := os.Getenv("MIDTRANS_SERVER_KEY")

	// ===== Public =====
	public := app.Group("/api/public")
	log.Println("[INFO] Mounting public routes...")
	routeDetails.AuthPublicRoutes(public, db)
	routeDetails.EmiPublicRoutes(public, db)
	routeDetails.PaymentPublicRoutes(public, db, midtransServerKey)

	// ===== Any authenticated user =====
	user := app.Group("/api/u", authJWT)
	log.Println("[INFO] Mounting user routes...")
	routeDetails.AuthPrivateRoutes(user, db)

	// ===== Parent =====
	parent := app.Group("/api/p", authJWT, features.IsParent())
	log.Println("[INFO] Mounting parent routes...")
	routeDetails.ParentRoutes(parent, db)

	// ===== Platform admin =====
	admin := app.Group("/api/a", authJWT, features.IsPlatformAdmin())
	log.Println("[INFO] Mounting admin routes...")
	routeDetails.AdminRoutes(admin, db)

	// ===== Institution staff =====
	institution := app.Group("/api/i", authJWT, features.IsInstitutionStaff())
	log.Println("[INFO] Mounting institution routes...")
	routeDetails.InstitutionRoutes(institution, db)
}
