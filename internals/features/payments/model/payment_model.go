package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusInitiated        = "initiated"
	PaymentStatusAwaitingCallback = "awaiting_callback"
	PaymentStatusPaid             = "paid"
	PaymentStatusFailed           = "failed"
	PaymentStatusCanceled         = "canceled"
	PaymentStatusExpired          = "expired"
)

const (
	PaymentMethodGateway      = "gateway"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodOther        = "other"
)

const (
	PaymentProviderMidtrans = "midtrans"
)

/* ===================== Model ===================== */

// Payment records one collection attempt against an installment.
type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentInstallmentID uuid.UUID `gorm:"column:payment_installment_id;type:uuid;not null;index" json:"payment_installment_id"`
	PaymentUserID        uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`

	PaymentAmountINR int    `gorm:"column:payment_amount_inr;not null;check:payment_amount_inr > 0" json:"payment_amount_inr"`
	PaymentCurrency  string `gorm:"column:payment_currency;type:varchar(8);not null;default:'INR'" json:"payment_currency"`

	PaymentStatus string `gorm:"column:payment_status;type:varchar(20);not null;default:'initiated';index" json:"payment_status"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(16);not null;default:'gateway'" json:"payment_method"`

	PaymentGatewayProvider *string `gorm:"column:payment_gateway_provider;type:varchar(16)" json:"payment_gateway_provider,omitempty"`
	PaymentExternalID      *string `gorm:"column:payment_external_id;uniqueIndex" json:"payment_external_id,omitempty"` // order_id at the PSP
	PaymentCheckoutURL     *string `gorm:"column:payment_checkout_url" json:"payment_checkout_url,omitempty"`

	PaymentRequestedAt *time.Time `gorm:"column:payment_requested_at" json:"payment_requested_at,omitempty"`
	PaymentPaidAt      *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentFailedAt    *time.Time `gorm:"column:payment_failed_at" json:"payment_failed_at,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

func (p *Payment) IsGateway() bool {
	return p.PaymentMethod == PaymentMethodGateway && p.PaymentGatewayProvider != nil
}

func (p *Payment) IsOpen() bool {
	switch p.PaymentStatus {
	case PaymentStatusInitiated, PaymentStatusAwaitingCallback:
		return true
	default:
		return false
	}
}
