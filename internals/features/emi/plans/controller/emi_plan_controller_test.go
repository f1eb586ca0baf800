package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newQuoteApp() *fiber.App {
	app := fiber.New()
	ctl := &EmiPlanController{}
	app.Post("/api/public/emi-plans/quote", ctl.Quote)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
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

func TestQuoteEndpoint(t *testing.T) {
	app := newQuoteApp()

	resp, body := postJSON(t, app, "/api/public/emi-plans/quote",
		`{"fee_amount_inr":120000,"emi_plan_id":"plan-a"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	data, _ := body["data"].(map[string]any)
	if data == nil {
		t.Fatalf("missing data: %v", body)
	}
	if got := data["monthly_installment_inr"]; got != float64(13334) {
		t.Errorf("monthly = %v, want 13334", got)
	}
	if got := data["processing_fee_inr"]; got != float64(7200) {
		t.Errorf("processing fee = %v, want 7200", got)
	}
	if got := data["total_amount_inr"]; got != float64(127200) {
		t.Errorf("total = %v, want 127200", got)
	}
}

func TestQuoteEndpointUnknownPlan(t *testing.T) {
	app := newQuoteApp()

	resp, body := postJSON(t, app, "/api/public/emi-plans/quote",
		`{"fee_amount_inr":120000,"emi_plan_id":"7-months"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestQuoteEndpointValidation(t *testing.T) {
	app := newQuoteApp()

	resp, body := postJSON(t, app, "/api/public/emi-plans/quote",
		`{"fee_amount_inr":0,"emi_plan_id":""}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if _, ok := body["errors"].(map[string]any); !ok {
		t.Errorf("expected field errors, got %v", body)
	}
}
