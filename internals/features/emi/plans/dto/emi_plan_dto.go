package dto

// QuoteRequest previews plan economics before anything is persisted.
// The plan id accepts both canonical ("9-months") and legacy ("plan-a") forms.
type QuoteRequest struct {
	FeeAmountINR int    `json:"fee_amount_inr" validate:"required,gt=0"`
	EmiPlanID    string `json:"emi_plan_id" validate:"required"`
}
