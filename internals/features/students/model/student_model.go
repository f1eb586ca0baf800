package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is owned by exactly one parent user and one institution. The
// (parent, institution) unique index means a parent may hold one student
// per institution; re-onboarding under a different institution creates a
// second student instead of silently migrating the first.
type Student struct {
	StudentID            uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentParentUserID  uuid.UUID `gorm:"column:student_parent_user_id;type:uuid;not null;index;uniqueIndex:uniq_parent_institution,priority:1" json:"student_parent_user_id"`
	StudentInstitutionID uuid.UUID `gorm:"column:student_institution_id;type:uuid;not null;index;uniqueIndex:uniq_parent_institution,priority:2" json:"student_institution_id"`

	StudentName       string `gorm:"column:student_name;size:120;not null" json:"student_name"`
	StudentRollNumber string `gorm:"column:student_roll_number;size:40" json:"student_roll_number"`
	StudentClassName  string `gorm:"column:student_class_name;size:40" json:"student_class_name"`
	StudentSection    string `gorm:"column:student_section;size:10" json:"student_section"`

	StudentFeeAmountINR int    `gorm:"column:student_fee_amount_inr;not null;check:student_fee_amount_inr > 0" json:"student_fee_amount_inr"`
	StudentFeeType      string `gorm:"column:student_fee_type;size:60;not null;default:'tuition'" json:"student_fee_type"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;default:now()" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;default:now()" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *Student) BeforeUpdate(tx *gorm.DB) error {
	m.StudentUpdatedAt = time.Now()
	return nil
}
