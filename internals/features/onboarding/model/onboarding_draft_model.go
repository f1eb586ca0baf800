package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Wizard steps ===================== */

// Explicit step enum for the onboarding wizard. Server-persisted draft
// state replaces the old device-local flow, so every client sees the same
// progress.
const (
	StepStudentDetails  = 1 // student + institution + fee amount
	StepPlanSelection   = 2 // EMI plan choice
	StepPersonalDetails = 3 // PAN, gender, DOB, marital status, parents
	StepKYCDocuments    = 4 // document upload
	StepTermsConsent    = 5 // consents + final submit
	StepDone            = 6
)

/* ===================== Model ===================== */

// OnboardingDraft holds the in-progress wizard payload for one parent.
// One row per parent; each step PUT overwrites the payload and advances
// the step counter.
type OnboardingDraft struct {
	OnboardingDraftID           uuid.UUID `gorm:"column:onboarding_draft_id;type:uuid;default:gen_random_uuid();primaryKey" json:"onboarding_draft_id"`
	OnboardingDraftParentUserID uuid.UUID `gorm:"column:onboarding_draft_parent_user_id;type:uuid;not null;uniqueIndex" json:"onboarding_draft_parent_user_id"`

	OnboardingDraftCurrentStep int            `gorm:"column:onboarding_draft_current_step;not null;default:1" json:"onboarding_draft_current_step"`
	OnboardingDraftPayload     datatypes.JSON `gorm:"column:onboarding_draft_payload;type:jsonb" json:"onboarding_draft_payload,omitempty"`

	OnboardingDraftCreatedAt time.Time      `gorm:"column:onboarding_draft_created_at;not null;default:now()" json:"onboarding_draft_created_at"`
	OnboardingDraftUpdatedAt time.Time      `gorm:"column:onboarding_draft_updated_at;not null;default:now()" json:"onboarding_draft_updated_at"`
	OnboardingDraftDeletedAt gorm.DeletedAt `gorm:"column:onboarding_draft_deleted_at;index" json:"-"`
}

func (OnboardingDraft) TableName() string {
	return "onboarding_drafts"
}

func (m *OnboardingDraft) BeforeCreate(tx *gorm.DB) error {
	if m.OnboardingDraftID == uuid.Nil {
		m.OnboardingDraftID = uuid.New()
	}
	if m.OnboardingDraftCurrentStep == 0 {
		m.OnboardingDraftCurrentStep = StepStudentDetails
	}
	now := time.Now()
	if m.OnboardingDraftCreatedAt.IsZero() {
		m.OnboardingDraftCreatedAt = now
	}
	m.OnboardingDraftUpdatedAt = now
	return nil
}

func (m *OnboardingDraft) BeforeUpdate(tx *gorm.DB) error {
	m.OnboardingDraftUpdatedAt = time.Now()
	return nil
}
