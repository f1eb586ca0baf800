package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	planController "feesetu_backend/internals/features/emi/plans/controller"
)

// EmiPublicRoutes: the plan catalog and the quote preview are public so the
// landing page can render them before signup.
func EmiPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &planController.EmiPlanController{DB: db}

	plans := r.Group("/emi-plans")
	plans.Get("/", ctl.List)
	plans.Post("/quote", ctl.Quote)
}
