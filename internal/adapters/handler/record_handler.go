package handler

import (
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type RecordHandler struct {
	records ports.RecordService
}

func NewRecordHandler(records ports.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RecordFilter{
		PatientID: q.Get("patientId"),
		DoctorID:  q.Get("doctorId"),
		Status:    q.Get("status"),
		Page:      queryInt(r, "page", "1"),
		Limit:     queryInt(r, "limit", "50"),
	}

	records, err := h.records.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, records)
}

func (h *RecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	filter := domain.RecordFilter{
		PatientID: r.PathValue("patientId"),
		Page:      1,
		Limit:     queryInt(r, "limit", "50"),
	}

	records, err := h.records.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, records)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, record)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ports.CreateRecordInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	record, err := h.records.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "Tạo hồ sơ bệnh án thành công", record)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch ports.RecordPatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	record, err := h.records.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: record, Message: "Cập nhật hồ sơ bệnh án thành công"})
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Xóa hồ sơ bệnh án thành công")
}
