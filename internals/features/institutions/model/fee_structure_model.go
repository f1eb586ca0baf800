package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructure is a memoized side-table: first lookup by
// (institution, name, academic year) wins; if absent one is synthesized
// from the fee amount supplied during onboarding.
type FeeStructure struct {
	FeeStructureID            uuid.UUID `gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_structure_id"`
	FeeStructureInstitutionID uuid.UUID `gorm:"column:fee_structure_institution_id;type:uuid;not null;index;uniqueIndex:uniq_fee_structure,priority:1" json:"fee_structure_institution_id"`

	FeeStructureName         string `gorm:"column:fee_structure_name;size:120;not null;uniqueIndex:uniq_fee_structure,priority:2" json:"fee_structure_name"`
	FeeStructureAmountINR    int    `gorm:"column:fee_structure_amount_inr;not null;check:fee_structure_amount_inr > 0" json:"fee_structure_amount_inr"`
	FeeStructureAcademicYear string `gorm:"column:fee_structure_academic_year;size:12;not null;uniqueIndex:uniq_fee_structure,priority:3" json:"fee_structure_academic_year"`

	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;not null;default:now()" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;not null;default:now()" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"-"`
}

func (FeeStructure) TableName() string {
	return "fee_structures"
}

func (m *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureID == uuid.Nil {
		m.FeeStructureID = uuid.New()
	}
	now := time.Now()
	if m.FeeStructureCreatedAt.IsZero() {
		m.FeeStructureCreatedAt = now
	}
	m.FeeStructureUpdatedAt = now
	return nil
}
