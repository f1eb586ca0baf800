package model

import "testing"

func TestAllowsAmount(t *testing.T) {
	plan := EmiPlan{
		EmiPlanMinAmountINR: CatalogMinAmountINR,
		EmiPlanMaxAmountINR: CatalogMaxAmountINR,
	}

	cases := []struct {
		amount int
		want   bool
	}{
		{9_999, false},
		{10_000, true},
		{120_000, true},
		{2_000_000, true},
		{2_000_001, false},
		{1, false},
	}
	for _, tc := range cases {
		if got := plan.AllowsAmount(tc.amount); got != tc.want {
			t.Errorf("AllowsAmount(%d) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

func TestAllowsAmountUnbounded(t *testing.T) {
	// zero bounds mean no limit on that side
	plan := EmiPlan{}
	for _, amount := range []int{1, 10_000, 50_000_000} {
		if !plan.AllowsAmount(amount) {
			t.Errorf("unbounded plan rejected %d", amount)
		}
	}
}
