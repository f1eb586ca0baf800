package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	onboardingModel "feesetu_backend/internals/features/onboarding/model"
	studentModel "feesetu_backend/internals/features/students/model"
	parentModel "feesetu_backend/internals/features/users/parent/model"
)

func appWithStatus(status string) *appModel.FeeApplication {
	planID := uuid.New()
	return &appModel.FeeApplication{
		FeeApplicationStatus:    status,
		FeeApplicationEmiPlanID: &planID,
	}
}

func TestProjectDecisionTable(t *testing.T) {
	cases := []struct {
		name        string
		app         *appModel.FeeApplication
		isCompleted bool
		hasPlan     bool
		wantTag     string
	}{
		{"no onboarding no app", nil, false, false, StatusTagOnboardingPending},
		{"onboarding done but no plan", nil, true, false, StatusTagOnboardingPending},
		{"plan chosen but onboarding unfinished", appWithStatus(appModel.ApplicationStatusPlatformReview), false, true, StatusTagOnboardingPending},
		{"in review", appWithStatus(appModel.ApplicationStatusPlatformReview), true, true, StatusTagEmiProgress},
		{"approved", appWithStatus(appModel.ApplicationStatusApproved), true, true, StatusTagEmiProgress},
		{"active", appWithStatus(appModel.ApplicationStatusActive), true, true, StatusTagEmiProgress},
		{"paid to institution", appWithStatus(appModel.ApplicationStatusPaidToInstitution), true, true, StatusTagCompleted},
		{"rejected", appWithStatus(appModel.ApplicationStatusRejected), true, true, StatusTagRejected},
		{"unknown status falls back", appWithStatus("weird"), true, true, StatusTagEmiPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Project(tc.app, tc.isCompleted, tc.hasPlan, onboardingModel.StepStudentDetails)
			if p.StatusTag != tc.wantTag {
				t.Errorf("StatusTag = %q, want %q", p.StatusTag, tc.wantTag)
			}
			if p.StatusText == "" || p.ActionText == "" || p.ActionURL == "" {
				t.Errorf("projection has empty fields: %+v", p)
			}
		})
	}
}

func TestProjectOnboardingActionCarriesStep(t *testing.T) {
	p := Project(nil, false, false, onboardingModel.StepKYCDocuments)
	if p.ActionURL != "/onboarding?step=4" {
		t.Errorf("ActionURL = %q", p.ActionURL)
	}
}

func TestNextStepInference(t *testing.T) {
	planID := uuid.New()
	pan := "ABCDE1234F"
	gender := parentModel.GenderFemale
	marital := parentModel.MaritalMarried
	dob := time.Date(1985, time.April, 12, 0, 0, 0, 0, time.UTC)
	kycURL := "https://storage.example.com/kyc/doc.webp"

	profileWithDetails := func() *parentModel.ParentProfile {
		return &parentModel.ParentProfile{
			ParentProfilePAN:           &pan,
			ParentProfileGender:        &gender,
			ParentProfileDOB:           &dob,
			ParentProfileMaritalStatus: &marital,
		}
	}

	cases := []struct {
		name    string
		profile *parentModel.ParentProfile
		student *studentModel.Student
		app     *appModel.FeeApplication
		want    int
	}{
		{"nothing yet", nil, nil, nil, onboardingModel.StepStudentDetails},
		{"student only", nil, &studentModel.Student{}, nil, onboardingModel.StepPlanSelection},
		{"app without plan", nil, &studentModel.Student{}, &appModel.FeeApplication{}, onboardingModel.StepPlanSelection},
		{
			"plan chosen, no personal details",
			nil,
			&studentModel.Student{},
			&appModel.FeeApplication{FeeApplicationEmiPlanID: &planID},
			onboardingModel.StepPersonalDetails,
		},
		{
			"personal details, no kyc",
			profileWithDetails(),
			&studentModel.Student{},
			&appModel.FeeApplication{FeeApplicationEmiPlanID: &planID},
			onboardingModel.StepKYCDocuments,
		},
		{
			"kyc uploaded, consent pending",
			func() *parentModel.ParentProfile {
				p := profileWithDetails()
				p.ParentProfileKYCDocumentURL = &kycURL
				return p
			}(),
			&studentModel.Student{},
			&appModel.FeeApplication{FeeApplicationEmiPlanID: &planID},
			onboardingModel.StepTermsConsent,
		},
		{
			"completed wins over everything",
			&parentModel.ParentProfile{ParentProfileIsOnboardingCompleted: true},
			nil,
			nil,
			onboardingModel.StepDone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextStep(tc.profile, tc.student, tc.app); got != tc.want {
				t.Errorf("NextStep = %d, want %d", got, tc.want)
			}
		})
	}
}
