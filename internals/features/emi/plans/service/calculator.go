package service

import (
	"errors"
	"math"

	"feesetu_backend/internals/features/emi/plans/model"
)

var (
	ErrInvalidFeeAmount = errors.New("fee amount must be greater than zero")
	ErrUnknownDuration  = errors.New("duration is not in the plan catalog")
)

// PlanQuote is the economics of one fee amount financed over one tenor.
// Interest is always advertised as 0%; the processing fee is the only
// charge and it grows with plan length to discourage very long tenors.
type PlanQuote struct {
	FeeAmountINR          int `json:"fee_amount_inr"`
	DurationMonths        int `json:"duration_months"`
	MonthlyInstallmentINR int `json:"monthly_installment_inr"`
	ProcessingFeeINR      int `json:"processing_fee_inr"`
	TotalAmountINR        int `json:"total_amount_inr"`
	InterestRateBps       int `json:"interest_rate_bps"`
}

// ComputePlan maps a fee amount and a catalog duration to the monthly
// installment, processing fee and total payable.
//
//	monthlyInstallment = ceil(fee / duration)
//	processingFee      = round(fee * 0.02 * duration/3)   (2% per 3-month block)
//	totalAmount        = fee + processingFee
//
// A duration outside the catalog is an explicit error, never a silent
// fallback: a mismatch here means the client and server disagree about
// the plan catalog.
func ComputePlan(feeAmountINR, durationMonths int) (PlanQuote, error) {
	if feeAmountINR <= 0 {
		return PlanQuote{}, ErrInvalidFeeAmount
	}
	if !model.IsCatalogDuration(durationMonths) {
		return PlanQuote{}, ErrUnknownDuration
	}

	monthly := (feeAmountINR + durationMonths - 1) / durationMonths // integer ceil
	fee := int(math.Round(float64(feeAmountINR) * 0.02 * float64(durationMonths) / 3.0))

	return PlanQuote{
		FeeAmountINR:          feeAmountINR,
		DurationMonths:        durationMonths,
		MonthlyInstallmentINR: monthly,
		ProcessingFeeINR:      fee,
		TotalAmountINR:        feeAmountINR + fee,
		InterestRateBps:       0,
	}, nil
}
