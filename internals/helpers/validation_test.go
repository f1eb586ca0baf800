package helper

import (
	"testing"
	"time"
)

func TestIsValidPAN(t *testing.T) {
	valid := []string{"ABCDE1234F", "ZZZZZ0000A", "PQRST9876K"}
	for _, s := range valid {
		if !IsValidPAN(s) {
			t.Errorf("IsValidPAN(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"abcde1234f", // lowercase rejected, normalization is the caller's job
		"ABCDE12345", // digit where the final letter should be
		"ABCD1234F",  // four letters up front
		"ABCDE123F",  // three digits
		"ABCDE1234FX",
		" ABCDE1234F",
		"ABCDE-234F",
	}
	for _, s := range invalid {
		if IsValidPAN(s) {
			t.Errorf("IsValidPAN(%q) = true, want false", s)
		}
	}
}

func TestValidatePANTag(t *testing.T) {
	type payload struct {
		ParentPAN string `validate:"required,pan"`
	}

	if err := Validate.Struct(payload{ParentPAN: "ABCDE1234F"}); err != nil {
		t.Errorf("valid PAN rejected: %v", err)
	}
	err := Validate.Struct(payload{ParentPAN: "nope"})
	if err == nil {
		t.Fatal("invalid PAN accepted")
	}
	m := ValidationErrorMap(err)
	if msgs, ok := m["parent_pan"]; !ok || len(msgs) == 0 {
		t.Errorf("error map missing parent_pan field: %v", m)
	}
}

func TestToSnakeKeepsAcronymsTogether(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PAN", "pan"},
		{"ParentPAN", "parent_pan"},
		{"PANNumber", "pan_number"},
		{"FeeAmountINR", "fee_amount_inr"},
		{"DOB", "dob"},
		{"ParentEmail", "parent_email"},
		{"ConsentAutoDebit", "consent_auto_debit"},
	}
	for _, tc := range cases {
		if got := toSnake(tc.in); got != tc.want {
			t.Errorf("toSnake(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveAcademicYear(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), "2026-2027"},
		{time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC), "2026-2027"},
		{time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC), "2030-2031"},
	}
	for _, tc := range cases {
		if got := DeriveAcademicYear(tc.t); got != tc.want {
			t.Errorf("DeriveAcademicYear(%s) = %q, want %q", tc.t, got, tc.want)
		}
	}
}

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Delhi Public School", "delhi-public-school"},
		{"  St. Xavier's College  ", "st-xavier-s-college"},
		{"ABC---123", "abc-123"},
		{"!!!", "org"},
		{"", "org"},
	}
	for _, tc := range cases {
		if got := GenerateSlug(tc.in); got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
