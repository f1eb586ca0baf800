package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	institutionController "feesetu_backend/internals/features/institutions/controller"
)

// InstitutionRoutes: the read-only surface for institution staff.
func InstitutionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &institutionController.InstitutionStaffController{DB: db}

	r.Get("/profile", ctl.Profile)
	r.Get("/fee-structures", ctl.FeeStructures)
	r.Get("/students", ctl.Students)
	r.Get("/applications", ctl.Applications)
}
