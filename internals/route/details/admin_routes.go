package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appController "feesetu_backend/internals/features/emi/applications/controller"
	institutionController "feesetu_backend/internals/features/institutions/controller"
)

// AdminRoutes: platform review queue and tenant provisioning.
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	applications := &appController.AdminApplicationController{DB: db}
	institutions := &institutionController.InstitutionAdminController{DB: db}

	apps := r.Group("/applications")
	apps.Get("/", applications.List)
	apps.Get("/:id", applications.Detail)
	apps.Post("/:id/approve", applications.Approve)
	apps.Post("/:id/reject", applications.Reject)
	apps.Post("/:id/pay-institution", applications.PayInstitution)

	inst := r.Group("/institutions")
	inst.Post("/", institutions.Create)
	inst.Get("/", institutions.List)
	inst.Get("/:id", institutions.Detail)
	inst.Get("/:id/fee-structures", institutions.ListFeeStructures)
	inst.Post("/:id/fee-structures", institutions.CreateFeeStructure)
}
