package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog durations in months. Every duration is a multiple of 3 because
// the processing fee is priced per 3-month block.
var CatalogDurations = []int{3, 6, 9, 12, 18, 24}

// Eligibility bounds every catalog plan ships with.
const (
	CatalogMinAmountINR = 10_000
	CatalogMaxAmountINR = 2_000_000
)

// IsCatalogDuration reports whether d is one of the seeded durations.
func IsCatalogDuration(d int) bool {
	for _, v := range CatalogDurations {
		if v == d {
			return true
		}
	}
	return false
}

// PlanKeyForDuration builds the canonical plan key, e.g. 9 → "9-months".
func PlanKeyForDuration(d int) string {
	return fmt.Sprintf("%d-months", d)
}

// EmiPlan is a canonical duration-based plan. Interest is always zero in
// current business rules; the processing fee is what scales with tenor.
type EmiPlan struct {
	EmiPlanID  uuid.UUID `gorm:"column:emi_plan_id;type:uuid;default:gen_random_uuid();primaryKey" json:"emi_plan_id"`
	EmiPlanKey string    `gorm:"column:emi_plan_key;size:20;not null;uniqueIndex" json:"emi_plan_key"`

	EmiPlanDurationMonths int `gorm:"column:emi_plan_duration_months;not null;check:emi_plan_duration_months > 0" json:"emi_plan_duration_months"`

	// basis points; interest is always 0, processing fee 200 (=2%) per
	// 3-month block
	EmiPlanInterestRateBps  int `gorm:"column:emi_plan_interest_rate_bps;not null;default:0" json:"emi_plan_interest_rate_bps"`
	EmiPlanProcessingFeeBps int `gorm:"column:emi_plan_processing_fee_bps;not null;default:200" json:"emi_plan_processing_fee_bps"`

	EmiPlanMinAmountINR int `gorm:"column:emi_plan_min_amount_inr;not null;default:0" json:"emi_plan_min_amount_inr"`
	EmiPlanMaxAmountINR int `gorm:"column:emi_plan_max_amount_inr;not null;default:0" json:"emi_plan_max_amount_inr"`

	EmiPlanIsActive bool `gorm:"column:emi_plan_is_active;not null;default:true" json:"emi_plan_is_active"`

	EmiPlanCreatedAt time.Time      `gorm:"column:emi_plan_created_at;not null;default:now()" json:"emi_plan_created_at"`
	EmiPlanUpdatedAt time.Time      `gorm:"column:emi_plan_updated_at;not null;default:now()" json:"emi_plan_updated_at"`
	EmiPlanDeletedAt gorm.DeletedAt `gorm:"column:emi_plan_deleted_at;index" json:"-"`
}

func (EmiPlan) TableName() string {
	return "emi_plans"
}

// AllowsAmount checks a fee against the plan's eligibility bounds. A zero
// bound leaves that side unbounded.
func (m *EmiPlan) AllowsAmount(amountINR int) bool {
	if m.EmiPlanMinAmountINR > 0 && amountINR < m.EmiPlanMinAmountINR {
		return false
	}
	if m.EmiPlanMaxAmountINR > 0 && amountINR > m.EmiPlanMaxAmountINR {
		return false
	}
	return true
}

func (m *EmiPlan) BeforeCreate(tx *gorm.DB) error {
	if m.EmiPlanID == uuid.Nil {
		m.EmiPlanID = uuid.New()
	}
	now := time.Now()
	if m.EmiPlanCreatedAt.IsZero() {
		m.EmiPlanCreatedAt = now
	}
	m.EmiPlanUpdatedAt = now
	return nil
}
