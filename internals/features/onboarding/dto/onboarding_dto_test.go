package dto

import (
	"testing"

	helper "feesetu_backend/internals/helpers"
)

func validSubmit() OnboardingSubmitRequest {
	return OnboardingSubmitRequest{
		StudentName:     "Kiran Verma",
		InstitutionName: "Delhi Public School",
		InstitutionType: "school",
		FeeAmountINR:    120000,
		FeeType:         "tuition",
		EmiPlanID:       "plan-a",
		ParentName:      "Asha Verma",
		ParentPAN:       "ABCDE1234F",
		ApplicantPAN:    "FGHIJ5678K",
		ParentPhone:     "+919876543210",
		ParentEmail:     "asha@example.com",
		Gender:          "female",
		DOB:             "1985-04-12",
		MaritalStatus:   "married",
		FatherName:      "Ram Verma",
		MotherName:      "Sita Verma",

		ConsentTerms:       true,
		ConsentCreditCheck: true,
		ConsentAutoDebit:   true,
	}
}

func TestSubmitRequestValid(t *testing.T) {
	req := validSubmit()
	if err := helper.Validate.Struct(req); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestSubmitRequestRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*OnboardingSubmitRequest)
	}{
		{"missing student name", func(r *OnboardingSubmitRequest) { r.StudentName = "" }},
		{"missing institution", func(r *OnboardingSubmitRequest) { r.InstitutionName = "" }},
		{"zero fee", func(r *OnboardingSubmitRequest) { r.FeeAmountINR = 0 }},
		{"negative fee", func(r *OnboardingSubmitRequest) { r.FeeAmountINR = -5000 }},
		{"missing plan", func(r *OnboardingSubmitRequest) { r.EmiPlanID = "" }},
		{"lowercase pan", func(r *OnboardingSubmitRequest) { r.ParentPAN = "abcde1234f" }},
		{"malformed pan", func(r *OnboardingSubmitRequest) { r.ApplicantPAN = "ABCDE12345" }},
		{"bad email", func(r *OnboardingSubmitRequest) { r.ParentEmail = "not-an-email" }},
		{"bad dob format", func(r *OnboardingSubmitRequest) { r.DOB = "12-04-1985" }},
		{"unknown gender", func(r *OnboardingSubmitRequest) { r.Gender = "unknown" }},
		{"unknown institution type", func(r *OnboardingSubmitRequest) { r.InstitutionType = "academy" }},
		{"terms not accepted", func(r *OnboardingSubmitRequest) { r.ConsentTerms = false }},
		{"credit check not accepted", func(r *OnboardingSubmitRequest) { r.ConsentCreditCheck = false }},
		{"auto debit not accepted", func(r *OnboardingSubmitRequest) { r.ConsentAutoDebit = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSubmit()
			tc.mutate(&req)
			if err := helper.Validate.Struct(req); err == nil {
				t.Error("invalid payload accepted")
			}
		})
	}
}

func TestDraftPutRequestStepBounds(t *testing.T) {
	for _, step := range []int{1, 2, 3, 4, 5, 6} {
		req := DraftPutRequest{CurrentStep: step, Payload: []byte(`{"a":1}`)}
		if err := helper.Validate.Struct(req); err != nil {
			t.Errorf("step %d rejected: %v", step, err)
		}
	}
	for _, step := range []int{0, 7, -1} {
		req := DraftPutRequest{CurrentStep: step, Payload: []byte(`{}`)}
		if err := helper.Validate.Struct(req); err == nil {
			t.Errorf("step %d accepted", step)
		}
	}
}
