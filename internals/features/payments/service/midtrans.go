package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"feesetu_backend/internals/features/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans must be called once at bootstrap.
// useProduction=false targets the sandbox environment.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

/* =========================================================
   Customer input
========================================================= */

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

/* =========================================================
   Snap token
========================================================= */

// GenerateSnapToken creates a Snap transaction for one installment payment
// and returns (token, redirect_url). PaymentExternalID is the PSP order id.
func GenerateSnapToken(p *model.Payment, cust CustomerInput) (string, string, error) {
	if p.PaymentAmountINR <= 0 {
		return "", "", errors.New("invalid payment_amount_inr")
	}
	if p.PaymentExternalID == nil || *p.PaymentExternalID == "" {
		return "", "", errors.New("payment_external_id is required (used as OrderID)")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.PaymentExternalID,
			GrossAmt: int64(p.PaymentAmountINR),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.Name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}
	req.Items = &[]midtrans.ItemDetails{
		{
			ID:       *p.PaymentExternalID,
			Price:    int64(p.PaymentAmountINR),
			Qty:      1,
			Name:     "EMI installment",
			Category: "EMI",
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
