package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	ApplicationStatusPlatformReview    = "platform_review"
	ApplicationStatusApproved          = "approved"
	ApplicationStatusActive            = "active"
	ApplicationStatusRejected          = "rejected"
	ApplicationStatusPaidToInstitution = "paid_to_institution"
)

/* ===================== Model ===================== */

// FeeApplication is the central aggregate: one per student (unique index),
// update-in-place semantics on resubmission.
type FeeApplication struct {
	FeeApplicationID        uuid.UUID `gorm:"column:fee_application_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_application_id"`
	FeeApplicationStudentID uuid.UUID `gorm:"column:fee_application_student_id;type:uuid;not null;uniqueIndex" json:"fee_application_student_id"`

	FeeApplicationFeeStructureID uuid.UUID  `gorm:"column:fee_application_fee_structure_id;type:uuid;not null" json:"fee_application_fee_structure_id"`
	FeeApplicationEmiPlanID      *uuid.UUID `gorm:"column:fee_application_emi_plan_id;type:uuid" json:"fee_application_emi_plan_id,omitempty"`

	FeeApplicationStatus string `gorm:"column:fee_application_status;type:varchar(24);not null;default:'platform_review';index" json:"fee_application_status"`

	FeeApplicationTotalAmountINR        int `gorm:"column:fee_application_total_amount_inr;not null;check:fee_application_total_amount_inr >= 0" json:"fee_application_total_amount_inr"`
	FeeApplicationRemainingAmountINR    int `gorm:"column:fee_application_remaining_amount_inr;not null;check:fee_application_remaining_amount_inr >= 0" json:"fee_application_remaining_amount_inr"`
	FeeApplicationMonthlyInstallmentINR int `gorm:"column:fee_application_monthly_installment_inr;not null" json:"fee_application_monthly_installment_inr"`
	FeeApplicationProcessingFeeINR      int `gorm:"column:fee_application_processing_fee_inr;not null" json:"fee_application_processing_fee_inr"`

	FeeApplicationAppliedAt  time.Time  `gorm:"column:fee_application_applied_at;not null;default:now()" json:"fee_application_applied_at"`
	FeeApplicationApprovedAt *time.Time `gorm:"column:fee_application_approved_at" json:"fee_application_approved_at,omitempty"`

	FeeApplicationPlatformPaidToInstitution bool `gorm:"column:fee_application_platform_paid_to_institution;not null;default:false" json:"fee_application_platform_paid_to_institution"`

	FeeApplicationCreatedAt time.Time      `gorm:"column:fee_application_created_at;not null;default:now()" json:"fee_application_created_at"`
	FeeApplicationUpdatedAt time.Time      `gorm:"column:fee_application_updated_at;not null;default:now()" json:"fee_application_updated_at"`
	FeeApplicationDeletedAt gorm.DeletedAt `gorm:"column:fee_application_deleted_at;index" json:"-"`
}

func (FeeApplication) TableName() string {
	return "fee_applications"
}

func (m *FeeApplication) BeforeCreate(tx *gorm.DB) error {
	if m.FeeApplicationID == uuid.Nil {
		m.FeeApplicationID = uuid.New()
	}
	now := time.Now()
	if m.FeeApplicationCreatedAt.IsZero() {
		m.FeeApplicationCreatedAt = now
	}
	if m.FeeApplicationAppliedAt.IsZero() {
		m.FeeApplicationAppliedAt = now
	}
	m.FeeApplicationUpdatedAt = now
	return nil
}

func (m *FeeApplication) BeforeUpdate(tx *gorm.DB) error {
	m.FeeApplicationUpdatedAt = time.Now()
	return nil
}

// IsDecided reports whether an admin has already acted on the application.
func (m *FeeApplication) IsDecided() bool {
	switch m.FeeApplicationStatus {
	case ApplicationStatusApproved, ApplicationStatusActive,
		ApplicationStatusRejected, ApplicationStatusPaidToInstitution:
		return true
	default:
		return false
	}
}
