package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
)

/* ===================== Model ===================== */

// Installment belongs to one FeeApplication. The whole batch is created
// once when an application is approved and never regenerated; rows then
// mutate individually (pending → paid). "overdue" is never persisted —
// it is derived at read time from due date + pending status.
type Installment struct {
	InstallmentID               uuid.UUID `gorm:"column:installment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"installment_id"`
	InstallmentFeeApplicationID uuid.UUID `gorm:"column:installment_fee_application_id;type:uuid;not null;index;uniqueIndex:uniq_application_number,priority:1" json:"installment_fee_application_id"`

	InstallmentNumber    int       `gorm:"column:installment_number;not null;check:installment_number > 0;uniqueIndex:uniq_application_number,priority:2" json:"installment_number"`
	InstallmentAmountINR int       `gorm:"column:installment_amount_inr;not null;check:installment_amount_inr > 0" json:"installment_amount_inr"`
	InstallmentDueDate   time.Time `gorm:"column:installment_due_date;type:date;not null" json:"installment_due_date"`

	InstallmentStatus    string     `gorm:"column:installment_status;type:varchar(12);not null;default:'pending';index" json:"installment_status"`
	InstallmentPaymentID *uuid.UUID `gorm:"column:installment_payment_id;type:uuid" json:"installment_payment_id,omitempty"`
	InstallmentPaidAt    *time.Time `gorm:"column:installment_paid_at" json:"installment_paid_at,omitempty"`

	InstallmentCreatedAt time.Time      `gorm:"column:installment_created_at;not null;default:now()" json:"installment_created_at"`
	InstallmentUpdatedAt time.Time      `gorm:"column:installment_updated_at;not null;default:now()" json:"installment_updated_at"`
	InstallmentDeletedAt gorm.DeletedAt `gorm:"column:installment_deleted_at;index" json:"-"`
}

func (Installment) TableName() string {
	return "installments"
}

func (m *Installment) BeforeCreate(tx *gorm.DB) error {
	if m.InstallmentID == uuid.Nil {
		m.InstallmentID = uuid.New()
	}
	now := time.Now()
	if m.InstallmentCreatedAt.IsZero() {
		m.InstallmentCreatedAt = now
	}
	m.InstallmentUpdatedAt = now
	return nil
}

func (m *Installment) BeforeUpdate(tx *gorm.DB) error {
	m.InstallmentUpdatedAt = time.Now()
	return nil
}

// IsOverdue is the read-time derivation: pending and past due.
func (m *Installment) IsOverdue(now time.Time) bool {
	return m.InstallmentStatus == InstallmentStatusPending && m.InstallmentDueDate.Before(now)
}
