package service

import (
	"errors"
	"testing"
)

func TestComputePlanFormulas(t *testing.T) {
	cases := []struct {
		name        string
		fee         int
		duration    int
		wantMonthly int
		wantFee     int
		wantTotal   int
	}{
		{"120000 over 3", 120000, 3, 40000, 2400, 122400},
		{"120000 over 6", 120000, 6, 20000, 4800, 124800},
		{"120000 over 9", 120000, 9, 13334, 7200, 127200},
		{"120000 over 12", 120000, 12, 10000, 9600, 129600},
		{"120000 over 18", 120000, 18, 6667, 14400, 134400},
		{"120000 over 24", 120000, 24, 5000, 19200, 139200},
		{"ceil rounds up", 100000, 6, 16667, 4000, 104000},
		{"tiny amount", 100, 3, 34, 2, 102},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ComputePlan(tc.fee, tc.duration)
			if err != nil {
				t.Fatalf("ComputePlan(%d, %d): %v", tc.fee, tc.duration, err)
			}
			if q.MonthlyInstallmentINR != tc.wantMonthly {
				t.Errorf("monthly = %d, want %d", q.MonthlyInstallmentINR, tc.wantMonthly)
			}
			if q.ProcessingFeeINR != tc.wantFee {
				t.Errorf("processing fee = %d, want %d", q.ProcessingFeeINR, tc.wantFee)
			}
			if q.TotalAmountINR != tc.wantTotal {
				t.Errorf("total = %d, want %d", q.TotalAmountINR, tc.wantTotal)
			}
			if q.InterestRateBps != 0 {
				t.Errorf("interest = %d bps, want 0", q.InterestRateBps)
			}
		})
	}
}

func TestComputePlanRejectsUnknownDuration(t *testing.T) {
	for _, d := range []int{0, 1, 2, 4, 5, 7, 10, 36, -6} {
		if _, err := ComputePlan(120000, d); !errors.Is(err, ErrUnknownDuration) {
			t.Errorf("ComputePlan(120000, %d) err = %v, want ErrUnknownDuration", d, err)
		}
	}
}

func TestComputePlanRejectsInvalidAmount(t *testing.T) {
	for _, fee := range []int{0, -1, -120000} {
		if _, err := ComputePlan(fee, 9); !errors.Is(err, ErrInvalidFeeAmount) {
			t.Errorf("ComputePlan(%d, 9) err = %v, want ErrInvalidFeeAmount", fee, err)
		}
	}
}

func TestLegacyPlanAQuote(t *testing.T) {
	// "plan-a" resolves to 9 months; 120000 then quotes 13334/month with a
	// 7200 processing fee
	key := NormalizePlanKey("plan-a")
	d, ok := DurationFromPlanKey(key)
	if !ok || d != 9 {
		t.Fatalf("plan-a resolved to %q (%d months)", key, d)
	}
	q, err := ComputePlan(120000, d)
	if err != nil {
		t.Fatal(err)
	}
	if q.MonthlyInstallmentINR != 13334 || q.ProcessingFeeINR != 7200 || q.TotalAmountINR != 127200 {
		t.Errorf("quote = %+v", q)
	}
}
