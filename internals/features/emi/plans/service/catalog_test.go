package service

import "testing"

func TestNormalizePlanKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plan-a", "9-months"},
		{"plan-b", "6-months"},
		{"plan-c", "12-months"},
		{"plan-d", "18-months"},
		{"plan-e", "24-months"},
		{"PLAN-A", "9-months"},
		{"  plan-b  ", "6-months"},
		{"9-months", "9-months"},
		{"3-months", "3-months"},
		{"something-else", "something-else"},
	}
	for _, tc := range cases {
		if got := NormalizePlanKey(tc.in); got != tc.want {
			t.Errorf("NormalizePlanKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDurationFromPlanKey(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3-months", 3, true},
		{"24-months", 24, true},
		{"7-months", 7, true}, // parses fine; catalog membership is checked separately
		{"months", 0, false},
		{"-months", 0, false},
		{"0-months", 0, false},
		{"-3-months", 0, false},
		{"9", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := DurationFromPlanKey(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("DurationFromPlanKey(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}
