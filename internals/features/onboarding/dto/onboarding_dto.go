package dto

import (
	"encoding/json"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	appService "feesetu_backend/internals/features/emi/applications/service"
	installmentModel "feesetu_backend/internals/features/emi/installments/model"
	planService "feesetu_backend/internals/features/emi/plans/service"
	studentModel "feesetu_backend/internals/features/students/model"
	parentModel "feesetu_backend/internals/features/users/parent/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// OnboardingSubmitRequest is the full terms-step payload. Everything is
// validated up front so a rejected submission makes zero writes.
type OnboardingSubmitRequest struct {
	// student + institution step
	StudentName        string `json:"student_name" validate:"required,min=2,max=120"`
	StudentRollNumber  string `json:"student_roll_number" validate:"omitempty,max=40"`
	StudentClassName   string `json:"student_class_name" validate:"omitempty,max=40"`
	StudentSection     string `json:"student_section" validate:"omitempty,max=10"`
	InstitutionName    string `json:"institution_name" validate:"required,min=2,max=160"`
	InstitutionType    string `json:"institution_type" validate:"omitempty,oneof=school college university coaching"`
	InstitutionAddress string `json:"institution_address" validate:"omitempty,max=500"`
	InstitutionCity    string `json:"institution_city" validate:"omitempty,max=80"`
	InstitutionState   string `json:"institution_state" validate:"omitempty,max=80"`
	InstitutionBoards  []string `json:"institution_boards" validate:"omitempty,dive,min=2,max=40"`

	FeeAmountINR int    `json:"fee_amount_inr" validate:"required,gt=0"`
	FeeType      string `json:"fee_type" validate:"omitempty,max=60"`

	// plan step
	EmiPlanID string `json:"emi_plan_id" validate:"required"`

	// personal step
	ParentName    string `json:"parent_name" validate:"required,min=2,max=120"`
	ParentPAN     string `json:"parent_pan" validate:"required,pan"`
	ApplicantPAN  string `json:"applicant_pan" validate:"required,pan"`
	ParentPhone   string `json:"parent_phone" validate:"required,min=8,max=20"`
	ParentEmail   string `json:"parent_email" validate:"required,email"`
	Gender        string `json:"gender" validate:"required,oneof=male female other"`
	DOB           string `json:"dob" validate:"required,datetime=2006-01-02"`
	MaritalStatus string `json:"marital_status" validate:"required,oneof=single married divorced widowed"`
	FatherName    string `json:"father_name" validate:"required,min=2,max=120"`
	MotherName    string `json:"mother_name" validate:"required,min=2,max=120"`

	AnnualIncomeINR int `json:"annual_income_inr" validate:"omitempty,gt=0"`

	// terms step — all three must be accepted
	ConsentTerms       bool `json:"consent_terms" validate:"required,eq=true"`
	ConsentCreditCheck bool `json:"consent_credit_check" validate:"required,eq=true"`
	ConsentAutoDebit   bool `json:"consent_auto_debit" validate:"required,eq=true"`
}

// DraftPutRequest saves one wizard step server-side.
type DraftPutRequest struct {
	CurrentStep int             `json:"current_step" validate:"required,min=1,max=6"`
	Payload     json.RawMessage `json:"payload" validate:"required"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

// OnboardingSubmitResponse is what the wizard's final step renders.
type OnboardingSubmitResponse struct {
	ParentProfile  *parentModel.ParentProfile `json:"parent_profile"`
	Student        *studentModel.Student      `json:"student"`
	FeeApplication *appModel.FeeApplication   `json:"fee_application"`
	EmiSummary     planService.PlanQuote      `json:"emi_summary"`
}

// DashboardResponse is the parent landing view.
type DashboardResponse struct {
	Projection   appService.Projection          `json:"projection"`
	NextStep     int                            `json:"next_step"`
	Student      *studentModel.Student          `json:"student,omitempty"`
	Application  *appModel.FeeApplication       `json:"application,omitempty"`
	Installments []installmentModel.Installment `json:"installments,omitempty"`
	OverdueCount int                            `json:"overdue_count"`
}
