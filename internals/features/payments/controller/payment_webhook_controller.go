package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	installmentService "feesetu_backend/internals/features/emi/installments/service"
	"feesetu_backend/internals/features/payments/model"
	helper "feesetu_backend/internals/helpers"
)

type PaymentWebhookController struct {
	DB                *gorm.DB
	MidtransServerKey string
}

type midtransNotif struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}

// POST /api/public/payments/midtrans/webhook
func (ctl *PaymentWebhookController) MidtransWebhook(c *fiber.Ctx) error {
	var notif midtransNotif
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid payload")
	}

	// SHA512(order_id + status_code + gross_amount + server key)
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + ctl.MidtransServerKey)
	if want == "" || got != want {
		return helper.JsonError(c, http.StatusUnauthorized, "invalid signature")
	}

	var payment model.Payment
	err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_external_id = ?", notif.OrderID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 200 so the gateway stops retrying an order we never issued
		return helper.JsonOK(c, "ignored", fiber.Map{"reason": "payment not found"})
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// callbacks replay; a settled payment never moves again
	if !payment.IsOpen() {
		return helper.JsonOK(c, "ignored", fiber.Map{"reason": "payment already final"})
	}

	now := time.Now()
	newStatus := mapMidtransStatus(notif)

	payment.PaymentStatus = newStatus
	payment.PaymentMeta = mergeMeta(payment.PaymentMeta, notif)
	switch newStatus {
	case model.PaymentStatusPaid:
		payment.PaymentPaidAt = &now
	case model.PaymentStatusFailed, model.PaymentStatusCanceled, model.PaymentStatusExpired:
		payment.PaymentFailedAt = &now
	}

	// payment finalization and installment settlement commit together: if
	// settling fails the payment row stays open, so the gateway's retry can
	// still complete the pair instead of hitting the replay guard above
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		if newStatus == model.PaymentStatusPaid {
			err := installmentService.MarkInstallmentPaid(tx, payment.PaymentInstallmentID, payment.PaymentID, now)
			if err != nil && !errors.Is(err, installmentService.ErrInstallmentNotPending) {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return helper.JsonError(c, http.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonOK(c, "webhook processed", fiber.Map{
		"payment_id":         payment.PaymentID,
		"payment_status":     payment.PaymentStatus,
		"transaction_status": notif.TransactionStatus,
	})
}

func mapMidtransStatus(n midtransNotif) string {
	switch n.TransactionStatus {
	case "capture":
		if n.FraudStatus == "accept" {
			return model.PaymentStatusPaid
		}
		if n.FraudStatus == "challenge" {
			return model.PaymentStatusAwaitingCallback
		}
		return model.PaymentStatusFailed
	case "settlement":
		return model.PaymentStatusPaid
	case "pending":
		return model.PaymentStatusAwaitingCallback
	case "deny", "failure":
		return model.PaymentStatusFailed
	case "cancel":
		return model.PaymentStatusCanceled
	case "expire":
		return model.PaymentStatusExpired
	default:
		return model.PaymentStatusAwaitingCallback
	}
}

func mergeMeta(meta map[string]interface{}, n midtransNotif) map[string]interface{} {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["transaction_id"] = n.TransactionID
	meta["transaction_status"] = n.TransactionStatus
	meta["payment_type"] = n.PaymentType
	meta["gross_amount"] = n.GrossAmount
	if n.SettlementTime != "" {
		meta["settlement_time"] = n.SettlementTime
	}
	return meta
}

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}
