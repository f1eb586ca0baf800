package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"feesetu_backend/internals/features/payments/model"
)

const testServerKey = "server-key"

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return db, mock
}

func newWebhookApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctl := &PaymentWebhookController{DB: db, MidtransServerKey: testServerKey}
	app.Post("/api/public/payments/midtrans/webhook", ctl.MidtransWebhook)
	return app
}

func settlementPayload(orderID string) string {
	statusCode, gross := "200", "20000.00"
	sig := sha512sum(orderID + statusCode + gross + testServerKey)
	return fmt.Sprintf(`{
		"order_id": %q,
		"status_code": %q,
		"gross_amount": %q,
		"transaction_status": "settlement",
		"transaction_id": "tx-1",
		"payment_type": "qris",
		"signature_key": %q
	}`, orderID, statusCode, gross, sig)
}

func postWebhook(t *testing.T, app *fiber.App, payload string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/public/payments/midtrans/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("invalid json response %q: %v", raw, err)
	}
	return resp, parsed
}

func expectOpenPaymentLookup(mock sqlmock.Sqlmock, paymentID, installmentID, userID uuid.UUID, orderID string) {
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"payment_id", "payment_installment_id", "payment_user_id",
			"payment_external_id", "payment_status", "payment_amount_inr",
		}).AddRow(paymentID.String(), installmentID.String(), userID.String(),
			orderID, model.PaymentStatusAwaitingCallback, 20000))
}

// A settlement callback whose installment write fails must leave the payment
// row open, so the gateway's retry can finish both writes together.
func TestWebhookSettlementRollsBackPaymentOnInstallmentFailure(t *testing.T) {
	db, mock := newMockDB(t)
	app := newWebhookApp(db)
	paymentID, installmentID, userID := uuid.New(), uuid.New(), uuid.New()
	orderID := "INST-" + installmentID.String()[:8]

	expectOpenPaymentLookup(mock, paymentID, installmentID, userID, orderID)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "installments"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	resp, _ := postWebhook(t, app, settlementPayload(orderID))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("payment update must roll back with the failed settlement: %v", err)
	}
}

func TestWebhookSettlementCommitsPaymentAndInstallmentTogether(t *testing.T) {
	db, mock := newMockDB(t)
	app := newWebhookApp(db)
	paymentID, installmentID, userID, applicationID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	orderID := "INST-" + installmentID.String()[:8]

	expectOpenPaymentLookup(mock, paymentID, installmentID, userID, orderID)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "installments"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"installment_id", "installment_fee_application_id",
			"installment_number", "installment_amount_inr", "installment_status",
		}).AddRow(installmentID.String(), applicationID.String(), 1, 20000, "pending"))
	mock.ExpectExec(`UPDATE "installments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "fee_applications"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"fee_application_id", "fee_application_remaining_amount_inr",
		}).AddRow(applicationID.String(), 120000))
	mock.ExpectExec(`UPDATE "fee_applications" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, body := postWebhook(t, app, settlementPayload(orderID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	data, _ := body["data"].(map[string]any)
	if data == nil || data["payment_status"] != model.PaymentStatusPaid {
		t.Errorf("payment_status = %v, want paid", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("settlement must commit payment and installment together: %v", err)
	}
}
