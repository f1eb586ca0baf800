package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	"feesetu_backend/internals/features/emi/installments/model"
	"feesetu_backend/internals/features/emi/installments/service"
	paymentModel "feesetu_backend/internals/features/payments/model"
	paymentService "feesetu_backend/internals/features/payments/service"
	studentModel "feesetu_backend/internals/features/students/model"
	authModel "feesetu_backend/internals/features/users/auth/model"
	parentModel "feesetu_backend/internals/features/users/parent/model"
	helper "feesetu_backend/internals/helpers"
	helperAuth "feesetu_backend/internals/helpers/auth"
)

type InstallmentController struct {
	DB *gorm.DB
}

// GET /api/p/installments
func (ctl *InstallmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())

	app, err := applicationForParent(db, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.Installment
	if err := db.Where("installment_fee_application_id = ?", app.FeeApplicationID).
		Order("installment_number ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "installments", fiber.Map{
		"installments":  rows,
		"overdue_count": service.OverdueCount(rows, time.Now()),
	})
}

// POST /api/p/installments/:id/checkout
//
// Creates a gateway payment and a Snap checkout session for one pending
// installment. An existing open payment for the same installment is
// returned instead of creating a second one.
func (ctl *InstallmentController) Checkout(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	installmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid installment id")
	}
	db := ctl.DB.WithContext(c.UserContext())

	app, err := applicationForParent(db, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var inst model.Installment
	err = db.Where("installment_id = ? AND installment_fee_application_id = ?",
		installmentID, app.FeeApplicationID).
		First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusNotFound, "installment not found")
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if inst.InstallmentStatus != model.InstallmentStatusPending {
		return helper.JsonError(c, http.StatusConflict, "installment is not pending")
	}

	// reuse an open payment instead of stacking checkout sessions
	var open paymentModel.Payment
	err = db.Where("payment_installment_id = ? AND payment_status IN ?",
		inst.InstallmentID,
		[]string{paymentModel.PaymentStatusInitiated, paymentModel.PaymentStatusAwaitingCallback}).
		First(&open).Error
	if err == nil {
		return helper.JsonOK(c, "checkout", open)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	orderID := fmt.Sprintf("INST-%s-%d", inst.InstallmentID.String()[:8], time.Now().Unix())
	provider := paymentModel.PaymentProviderMidtrans
	now := time.Now()

	payment := paymentModel.Payment{
		PaymentInstallmentID:   inst.InstallmentID,
		PaymentUserID:          userID,
		PaymentAmountINR:       inst.InstallmentAmountINR,
		PaymentCurrency:        "INR",
		PaymentStatus:          paymentModel.PaymentStatusInitiated,
		PaymentMethod:          paymentModel.PaymentMethodGateway,
		PaymentGatewayProvider: &provider,
		PaymentExternalID:      &orderID,
		PaymentRequestedAt:     &now,
	}
	if err := db.Create(&payment).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	cust := customerFor(db, userID)
	token, redirectURL, err := paymentService.GenerateSnapToken(&payment, cust)
	if err != nil {
		return helper.JsonError(c, http.StatusBadGateway, "payment gateway error: "+err.Error())
	}

	payment.PaymentStatus = paymentModel.PaymentStatusAwaitingCallback
	payment.PaymentCheckoutURL = &redirectURL
	if err := db.Save(&payment).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "checkout created", fiber.Map{
		"payment":      payment,
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

// applicationForParent resolves the caller's single fee application.
func applicationForParent(db *gorm.DB, userID uuid.UUID) (*appModel.FeeApplication, error) {
	var student studentModel.Student
	err := db.Where("student_parent_user_id = ?", userID).
		Order("student_created_at DESC").First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "no application yet")
	}
	if err != nil {
		return nil, err
	}

	var app appModel.FeeApplication
	err = db.Where("fee_application_student_id = ?", student.StudentID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "no application yet")
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// customerFor builds the gateway customer detail, best effort.
func customerFor(db *gorm.DB, userID uuid.UUID) paymentService.CustomerInput {
	cust := paymentService.CustomerInput{}
	var user authModel.UserModel
	if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
		cust.Name = user.UserName
		cust.Email = user.Email
	}
	var profile parentModel.ParentProfile
	if err := db.Where("parent_profile_user_id = ?", userID).First(&profile).Error; err == nil {
		if profile.ParentProfileFullName != nil {
			cust.Name = *profile.ParentProfileFullName
		}
		if profile.ParentProfilePhone != nil {
			cust.Phone = *profile.ParentProfilePhone
		}
	}
	return cust
}
