package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/handler"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

// newBillingMux wires the real service and handler over the mocks, with the
// same route patterns the API server registers.
func newBillingMux(invoices *mocks.MockInvoiceRepository, patients *mocks.MockPatientRepository) *http.ServeMux {
	service := services.NewBillingService(invoices, patients)
	h := handler.NewBillingHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/billing/{id}", h.Get)
	mux.HandleFunc("PATCH /api/billing/{id}/pay", h.MarkPaid)
	return mux
}

// Payment goes through PATCH on the pay action; an empty body means cash for
// the full amount.
func TestBillingHandler_Pay(t *testing.T) {
	invoices := mocks.NewMockInvoiceRepository()
	patients := mocks.NewMockPatientRepository()
	invoices.SeedInvoice(mocks.TestInvoice("inv-1", "patient-1"), nil)
	mux := newBillingMux(invoices, patients)

	req := httptest.NewRequest(http.MethodPatch, "/api/billing/inv-1/pay", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Status     string  `json:"status"`
			PaidAmount float64 `json:"paidAmount"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Status != "paid" {
		t.Errorf("expected paid status, got %q", resp.Data.Status)
	}
	if resp.Data.PaidAmount != 210000 {
		t.Errorf("expected paid amount 210000, got %.0f", resp.Data.PaidAmount)
	}
	if resp.Message != "Thanh toán thành công" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestBillingHandler_Pay_AlreadyPaid(t *testing.T) {
	invoices := mocks.NewMockInvoiceRepository()
	patients := mocks.NewMockPatientRepository()
	invoices.SeedInvoice(mocks.TestInvoice("inv-1", "patient-1"), nil)
	mux := newBillingMux(invoices, patients)

	req := httptest.NewRequest(http.MethodPatch, "/api/billing/inv-1/pay", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on first payment, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/billing/inv-1/pay", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on second payment, got %d", rec.Code)
	}
}
