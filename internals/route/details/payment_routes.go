package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "feesetu_backend/internals/features/payments/controller"
)

// PaymentPublicRoutes: gateway callbacks, authenticated by signature only.
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB, midtransServerKey string) {
	ctl := &paymentController.PaymentWebhookController{DB: db, MidtransServerKey: midtransServerKey}

	r.Post("/payments/midtrans/webhook", ctl.MidtransWebhook)
}
