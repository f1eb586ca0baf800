package controller

import (
	"testing"

	"feesetu_backend/internals/features/payments/model"
)

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		status string
		fraud  string
		want   string
	}{
		{"settlement", "", model.PaymentStatusPaid},
		{"capture", "accept", model.PaymentStatusPaid},
		{"capture", "challenge", model.PaymentStatusAwaitingCallback},
		{"capture", "deny", model.PaymentStatusFailed},
		{"pending", "", model.PaymentStatusAwaitingCallback},
		{"deny", "", model.PaymentStatusFailed},
		{"failure", "", model.PaymentStatusFailed},
		{"cancel", "", model.PaymentStatusCanceled},
		{"expire", "", model.PaymentStatusExpired},
		{"something_new", "", model.PaymentStatusAwaitingCallback},
	}
	for _, tc := range cases {
		n := midtransNotif{TransactionStatus: tc.status, FraudStatus: tc.fraud}
		if got := mapMidtransStatus(n); got != tc.want {
			t.Errorf("mapMidtransStatus(%q, fraud=%q) = %q, want %q", tc.status, tc.fraud, got, tc.want)
		}
	}
}

func TestWebhookSignature(t *testing.T) {
	// SHA512(order_id + status_code + gross_amount + server key), hex encoded
	got := sha512sum("ORDER-1" + "200" + "20000.00" + "server-key")
	if len(got) != 128 {
		t.Fatalf("digest length = %d, want 128", len(got))
	}
	if got != sha512sum("ORDER-1200"+"20000.00server-key") {
		t.Error("digest should only depend on the concatenated input")
	}
	if got == sha512sum("ORDER-1"+"200"+"20000.00"+"other-key") {
		t.Error("different server keys must not collide")
	}
}
