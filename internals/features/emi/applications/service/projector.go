package service

import (
	"fmt"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	onboardingModel "feesetu_backend/internals/features/onboarding/model"
	studentModel "feesetu_backend/internals/features/students/model"
	parentModel "feesetu_backend/internals/features/users/parent/model"
)

/* ===================== Status tags ===================== */

const (
	StatusTagOnboardingPending = "onboarding_pending"
	StatusTagEmiProgress       = "emi_progress"
	StatusTagCompleted         = "completed"
	StatusTagRejected          = "rejected"
	StatusTagEmiPending        = "emi_pending"
)

// Projection is the user-facing derivation of an application's state.
// Pure and side-effect-free: recomputed on every read, never stored.
type Projection struct {
	StatusTag  string `json:"status_tag"`
	StatusText string `json:"status_text"`
	ActionText string `json:"action_text"`
	ActionURL  string `json:"action_url"`
}

// Project derives status/label/action from the stored application status,
// the onboarding-completion flag and EMI-plan presence. Checked in order:
// incomplete onboarding always wins, then the stored status.
func Project(app *appModel.FeeApplication, isOnboardingCompleted, hasEmiPlan bool, nextStep int) Projection {
	if !isOnboardingCompleted || !hasEmiPlan {
		return Projection{
			StatusTag:  StatusTagOnboardingPending,
			StatusText: "Complete your application to get started",
			ActionText: "Continue application",
			ActionURL:  fmt.Sprintf("/onboarding?step=%d", nextStep),
		}
	}

	status := ""
	if app != nil {
		status = app.FeeApplicationStatus
	}

	switch status {
	case appModel.ApplicationStatusPlatformReview,
		appModel.ApplicationStatusApproved,
		appModel.ApplicationStatusActive:
		return Projection{
			StatusTag:  StatusTagEmiProgress,
			StatusText: "Your EMI plan is in progress",
			ActionText: "View installments",
			ActionURL:  "/dashboard/installments",
		}
	case appModel.ApplicationStatusPaidToInstitution:
		return Projection{
			StatusTag:  StatusTagCompleted,
			StatusText: "Fees paid to institution",
			ActionText: "View summary",
			ActionURL:  "/dashboard/summary",
		}
	case appModel.ApplicationStatusRejected:
		return Projection{
			StatusTag:  StatusTagRejected,
			StatusText: "Your application was not approved",
			ActionText: "Contact support",
			ActionURL:  "/support",
		}
	default:
		return Projection{
			StatusTag:  StatusTagEmiPending,
			StatusText: "Choose an EMI plan to continue",
			ActionText: "Select plan",
			ActionURL:  "/onboarding?step=2",
		}
	}
}

// NextStep is the single source of truth for "which wizard step is next".
// It is inferred from whichever fields are non-null, never stored, and
// both the dashboard and the draft endpoints consume this one function.
func NextStep(profile *parentModel.ParentProfile, student *studentModel.Student, app *appModel.FeeApplication) int {
	if profile != nil && profile.ParentProfileIsOnboardingCompleted {
		return onboardingModel.StepDone
	}
	if student == nil {
		return onboardingModel.StepStudentDetails
	}
	if app == nil || app.FeeApplicationEmiPlanID == nil {
		return onboardingModel.StepPlanSelection
	}
	if profile == nil || !profile.HasPersonalDetails() {
		return onboardingModel.StepPersonalDetails
	}
	if profile.ParentProfileKYCDocumentURL == nil {
		return onboardingModel.StepKYCDocuments
	}
	return onboardingModel.StepTermsConsent
}
