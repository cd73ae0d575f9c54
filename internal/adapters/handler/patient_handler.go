package handler

import (
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type PatientHandler struct {
	patients ports.PatientService
}

func NewPatientHandler(patients ports.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PatientFilter{
		Search:    q.Get("search"),
		Gender:    q.Get("gender"),
		AgeBand:   q.Get("age"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      queryInt(r, "page", "1"),
		Limit:     queryInt(r, "limit", "50"),
	}

	patients, total, err := h.patients.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, patients, filter.Page, filter.Limit, total)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patients.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, patient)
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ports.CreatePatientInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	patient, err := h.patients.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "Đăng ký bệnh nhân thành công", patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch ports.PatientPatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	patient, err := h.patients.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: patient, Message: "Cập nhật bệnh nhân thành công"})
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.patients.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Xóa bệnh nhân thành công")
}
