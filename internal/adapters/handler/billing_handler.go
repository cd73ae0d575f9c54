package handler

import (
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type BillingHandler struct {
	billing ports.BillingService
}

func NewBillingHandler(billing ports.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.InvoiceFilter{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		DateFrom:  q.Get("dateFrom"),
		DateTo:    q.Get("dateTo"),
		PatientID: q.Get("patientId"),
		Page:      queryInt(r, "page", "1"),
		Limit:     queryInt(r, "limit", "50"),
	}

	invoices, err := h.billing.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, invoices)
}

func (h *BillingHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.billing.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, invoice)
}

func (h *BillingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ports.CreateInvoiceInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	invoice, err := h.billing.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "Tạo hóa đơn thành công", invoice)
}

func (h *BillingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch ports.InvoicePatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	invoice, err := h.billing.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: invoice, Message: "Cập nhật hóa đơn thành công"})
}

func (h *BillingHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var in ports.MarkPaidInput
	// empty body means cash for the full amount
	_ = json.NewDecoder(r.Body).Decode(&in)

	invoice, err := h.billing.MarkPaid(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: invoice, Message: "Thanh toán thành công"})
}

func (h *BillingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.billing.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Xóa hóa đơn thành công")
}

func (h *BillingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.billing.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}
