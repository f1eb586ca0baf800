package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"feesetu_backend/internals/features/emi/installments/model"
)

func TestGenerateScheduleSplitsEvenly(t *testing.T) {
	appID := uuid.New()
	anchor := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	rows, err := GenerateSchedule(appID, 120000, 6, anchor)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Fatalf("len = %d, want 6", len(rows))
	}
	for i, r := range rows {
		if r.InstallmentAmountINR != 20000 {
			t.Errorf("row %d amount = %d, want 20000", i, r.InstallmentAmountINR)
		}
	}
}

func TestGenerateScheduleLastRowAbsorbsRemainder(t *testing.T) {
	rows, err := GenerateSchedule(uuid.New(), 100000, 6, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	// round(100000/6) = 16667 for the first five, the sixth absorbs the
	// remainder so the rows sum exactly to the total
	sum := 0
	for i, r := range rows {
		sum += r.InstallmentAmountINR
		if i < 5 && r.InstallmentAmountINR != 16667 {
			t.Errorf("row %d amount = %d, want 16667", i, r.InstallmentAmountINR)
		}
	}
	if last := rows[5].InstallmentAmountINR; last != 16665 {
		t.Errorf("last amount = %d, want 16665", last)
	}
	if sum != 100000 {
		t.Errorf("sum = %d, want 100000", sum)
	}
}

func TestGenerateScheduleSumsExactly(t *testing.T) {
	totals := []int{24, 99, 1000, 33333, 100001, 2000000}
	counts := []int{3, 6, 9, 12, 18, 24}
	for _, total := range totals {
		for _, count := range counts {
			rows, err := GenerateSchedule(uuid.New(), total, count, time.Now())
			if err != nil {
				t.Fatalf("GenerateSchedule(%d, %d): %v", total, count, err)
			}
			sum := 0
			for _, r := range rows {
				sum += r.InstallmentAmountINR
				if r.InstallmentAmountINR <= 0 {
					t.Errorf("total=%d count=%d: row %d amount = %d, want > 0",
						total, count, r.InstallmentNumber, r.InstallmentAmountINR)
				}
			}
			if sum != total {
				t.Errorf("total=%d count=%d: rows sum to %d", total, count, sum)
			}
		}
	}
}

func TestGenerateScheduleKeepsLastRowPositive(t *testing.T) {
	// round(36/24) = 2 would leave 36 - 2*23 = -10 on the last row; the
	// per-row amount falls back to the floor instead
	rows, err := GenerateSchedule(uuid.New(), 36, 24, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	sum := 0
	for _, r := range rows {
		if r.InstallmentAmountINR <= 0 {
			t.Errorf("row %d amount = %d, want > 0", r.InstallmentNumber, r.InstallmentAmountINR)
		}
		sum += r.InstallmentAmountINR
	}
	if rows[0].InstallmentAmountINR != 1 {
		t.Errorf("first amount = %d, want 1", rows[0].InstallmentAmountINR)
	}
	if last := rows[23].InstallmentAmountINR; last != 13 {
		t.Errorf("last amount = %d, want 13", last)
	}
	if sum != 36 {
		t.Errorf("sum = %d, want 36", sum)
	}
}

func TestGenerateScheduleDueDates(t *testing.T) {
	anchor := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	rows, err := GenerateSchedule(uuid.New(), 90000, 3, anchor)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range rows {
		want := anchor.AddDate(0, i+1, 0)
		if !r.InstallmentDueDate.Equal(want) {
			t.Errorf("row %d due = %s, want %s", i, r.InstallmentDueDate, want)
		}
		if r.InstallmentNumber != i+1 {
			t.Errorf("row %d number = %d, want %d", i, r.InstallmentNumber, i+1)
		}
		if r.InstallmentStatus != model.InstallmentStatusPending {
			t.Errorf("row %d status = %q", i, r.InstallmentStatus)
		}
	}
}

func TestGenerateScheduleRejectsInvalidInput(t *testing.T) {
	cases := []struct{ total, count int }{
		{0, 6}, {-100, 6}, {100000, 0}, {100000, -3},
		// fewer rupees than rows can never yield all-positive rows
		{1, 24}, {5, 6}, {23, 24},
	}
	for _, tc := range cases {
		if _, err := GenerateSchedule(uuid.New(), tc.total, tc.count, time.Now()); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("GenerateSchedule(total=%d, count=%d) err = %v, want ErrInvalidSchedule", tc.total, tc.count, err)
		}
	}
}

func TestOverdueCount(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.Installment{
		{InstallmentStatus: model.InstallmentStatusPending, InstallmentDueDate: now.AddDate(0, -2, 0)},
		{InstallmentStatus: model.InstallmentStatusPending, InstallmentDueDate: now.AddDate(0, -1, 0)},
		{InstallmentStatus: model.InstallmentStatusPaid, InstallmentDueDate: now.AddDate(0, -3, 0)},
		{InstallmentStatus: model.InstallmentStatusPending, InstallmentDueDate: now.AddDate(0, 1, 0)},
	}
	if got := OverdueCount(rows, now); got != 2 {
		t.Errorf("OverdueCount = %d, want 2", got)
	}
	if got := OverdueCount(nil, now); got != 0 {
		t.Errorf("OverdueCount(nil) = %d, want 0", got)
	}
}
