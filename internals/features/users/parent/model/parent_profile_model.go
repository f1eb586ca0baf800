package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"
)

/* ===================== Model ===================== */

// ParentProfile is 1:1 with a parent user. Fields accumulate across wizard
// steps; is_onboarding_completed gates dashboard access and further submits.
type ParentProfile struct {
	ParentProfileID     uuid.UUID `gorm:"column:parent_profile_id;type:uuid;default:gen_random_uuid();primaryKey" json:"parent_profile_id"`
	ParentProfileUserID uuid.UUID `gorm:"column:parent_profile_user_id;type:uuid;not null;uniqueIndex" json:"parent_profile_user_id"`

	ParentProfileFullName      *string    `gorm:"column:parent_profile_full_name;size:120" json:"parent_profile_full_name,omitempty"`
	ParentProfilePhone         *string    `gorm:"column:parent_profile_phone;size:20" json:"parent_profile_phone,omitempty"`
	ParentProfilePAN           *string    `gorm:"column:parent_profile_pan;size:10" json:"parent_profile_pan,omitempty"`
	ParentProfileApplicantPAN  *string    `gorm:"column:parent_profile_applicant_pan;size:10" json:"parent_profile_applicant_pan,omitempty"`
	ParentProfileGender        *string    `gorm:"column:parent_profile_gender;type:varchar(10)" json:"parent_profile_gender,omitempty"`
	ParentProfileDOB           *time.Time `gorm:"column:parent_profile_dob;type:date" json:"parent_profile_dob,omitempty"`
	ParentProfileMaritalStatus *string    `gorm:"column:parent_profile_marital_status;type:varchar(12)" json:"parent_profile_marital_status,omitempty"`
	ParentProfileFatherName    *string    `gorm:"column:parent_profile_father_name;size:120" json:"parent_profile_father_name,omitempty"`
	ParentProfileMotherName    *string    `gorm:"column:parent_profile_mother_name;size:120" json:"parent_profile_mother_name,omitempty"`

	ParentProfileAnnualIncomeINR *int    `gorm:"column:parent_profile_annual_income_inr;check:parent_profile_annual_income_inr >= 0" json:"parent_profile_annual_income_inr,omitempty"`
	ParentProfileKYCDocumentURL  *string `gorm:"column:parent_profile_kyc_document_url" json:"parent_profile_kyc_document_url,omitempty"`

	// consents from the terms step
	ParentProfileConsentTerms       bool `gorm:"column:parent_profile_consent_terms;not null;default:false" json:"parent_profile_consent_terms"`
	ParentProfileConsentCreditCheck bool `gorm:"column:parent_profile_consent_credit_check;not null;default:false" json:"parent_profile_consent_credit_check"`
	ParentProfileConsentAutoDebit   bool `gorm:"column:parent_profile_consent_auto_debit;not null;default:false" json:"parent_profile_consent_auto_debit"`

	ParentProfileIsOnboardingCompleted bool `gorm:"column:parent_profile_is_onboarding_completed;not null;default:false" json:"parent_profile_is_onboarding_completed"`

	ParentProfileCreatedAt time.Time      `gorm:"column:parent_profile_created_at;not null;default:now()" json:"parent_profile_created_at"`
	ParentProfileUpdatedAt time.Time      `gorm:"column:parent_profile_updated_at;not null;default:now()" json:"parent_profile_updated_at"`
	ParentProfileDeletedAt gorm.DeletedAt `gorm:"column:parent_profile_deleted_at;index" json:"-"`
}

func (ParentProfile) TableName() string {
	return "parent_profiles"
}

func (m *ParentProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ParentProfileID == uuid.Nil {
		m.ParentProfileID = uuid.New()
	}
	now := time.Now()
	if m.ParentProfileCreatedAt.IsZero() {
		m.ParentProfileCreatedAt = now
	}
	m.ParentProfileUpdatedAt = now
	return nil
}

func (m *ParentProfile) BeforeUpdate(tx *gorm.DB) error {
	m.ParentProfileUpdatedAt = time.Now()
	return nil
}

// HasPersonalDetails reports whether the personal/KYC step is done.
func (m *ParentProfile) HasPersonalDetails() bool {
	return m.ParentProfilePAN != nil && m.ParentProfileGender != nil &&
		m.ParentProfileDOB != nil && m.ParentProfileMaritalStatus != nil
}
