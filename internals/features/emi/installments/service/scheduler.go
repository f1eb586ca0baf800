package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	"feesetu_backend/internals/features/emi/installments/model"
)

var (
	ErrInvalidSchedule       = errors.New("schedule needs at least one rupee per installment")
	ErrScheduleAlreadyExists = errors.New("installments already generated for this application")
	ErrInstallmentNotPending = errors.New("installment is not pending")
)

// GenerateSchedule materializes the fixed-count installment sequence for an
// approved application. Each row gets round(total/count); the FINAL row
// absorbs the rounding remainder so the rows sum exactly to the total. Due
// dates are spaced one calendar month apart starting one month after the
// anchor (approval) date. Pure: rows are not persisted here.
//
// Every row must stay positive (the table carries a > 0 check constraint):
// totals below the installment count are rejected, and when rounding up
// would leave the final row at zero or below, the per-row amount falls back
// to the floor so the remainder lands on the last row as a surplus.
func GenerateSchedule(feeApplicationID uuid.UUID, totalAmountINR, count int, anchor time.Time) ([]model.Installment, error) {
	if totalAmountINR <= 0 || count <= 0 || totalAmountINR < count {
		return nil, ErrInvalidSchedule
	}

	per := int(math.Round(float64(totalAmountINR) / float64(count)))
	if per*(count-1) >= totalAmountINR {
		per = totalAmountINR / count
	}

	rows := make([]model.Installment, 0, count)
	for i := 1; i <= count; i++ {
		amount := per
		if i == count {
			amount = totalAmountINR - per*(count-1)
		}
		rows = append(rows, model.Installment{
			InstallmentFeeApplicationID: feeApplicationID,
			InstallmentNumber:           i,
			InstallmentAmountINR:        amount,
			InstallmentDueDate:          anchor.AddDate(0, i, 0),
			InstallmentStatus:           model.InstallmentStatusPending,
		})
	}
	return rows, nil
}

// CreateScheduleTx persists the batch inside the caller's transaction.
// Generated exactly once per application; a second call is a conflict.
func CreateScheduleTx(tx *gorm.DB, app *appModel.FeeApplication, count int, anchor time.Time) ([]model.Installment, error) {
	var existing int64
	if err := tx.Model(&model.Installment{}).
		Where("installment_fee_application_id = ?", app.FeeApplicationID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrScheduleAlreadyExists
	}

	rows, err := GenerateSchedule(app.FeeApplicationID, app.FeeApplicationTotalAmountINR, count, anchor)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkInstallmentPaid transitions one installment pending → paid, stamps
// paid_at/payment_id and decrements the parent application's remaining
// amount, all in one transaction.
func MarkInstallmentPaid(db *gorm.DB, installmentID, paymentID uuid.UUID, paidAt time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var inst model.Installment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("installment_id = ?", installmentID).
			First(&inst).Error; err != nil {
			return err
		}
		if inst.InstallmentStatus != model.InstallmentStatusPending {
			return ErrInstallmentNotPending
		}

		inst.InstallmentStatus = model.InstallmentStatusPaid
		inst.InstallmentPaymentID = &paymentID
		inst.InstallmentPaidAt = &paidAt
		if err := tx.Save(&inst).Error; err != nil {
			return err
		}

		var app appModel.FeeApplication
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fee_application_id = ?", inst.InstallmentFeeApplicationID).
			First(&app).Error; err != nil {
			return err
		}
		remaining := app.FeeApplicationRemainingAmountINR - inst.InstallmentAmountINR
		if remaining < 0 {
			remaining = 0
		}
		// the application stays active at zero remaining; the platform
		// moves it to paid_to_institution explicitly
		return tx.Model(&appModel.FeeApplication{}).
			Where("fee_application_id = ?", app.FeeApplicationID).
			Update("fee_application_remaining_amount_inr", remaining).Error
	})
}

// OverdueCount is the read-time "overdue" derivation over a slice.
func OverdueCount(rows []model.Installment, now time.Time) int {
	n := 0
	for i := range rows {
		if rows[i].IsOverdue(now) {
			n++
		}
	}
	return n
}
