package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appController "feesetu_backend/internals/features/emi/applications/controller"
	installmentController "feesetu_backend/internals/features/emi/installments/controller"
	onboardingController "feesetu_backend/internals/features/onboarding/controller"
)

// ParentRoutes: everything behind the parent role.
func ParentRoutes(r fiber.Router, db *gorm.DB) {
	onboarding := &onboardingController.Handler{DB: db}
	applications := &appController.ParentApplicationController{DB: db}
	installments := &installmentController.InstallmentController{DB: db}

	ob := r.Group("/onboarding")
	ob.Get("/draft", onboarding.GetDraft)
	ob.Put("/draft", onboarding.PutDraft)
	ob.Post("/submit", onboarding.Submit)
	ob.Post("/kyc-document", onboarding.UploadKYCDocument)

	r.Get("/dashboard", applications.Dashboard)
	r.Get("/applications/me", applications.MyApplication)

	inst := r.Group("/installments")
	inst.Get("/", installments.ListMine)
	inst.Post("/:id/checkout", installments.Checkout)
}
