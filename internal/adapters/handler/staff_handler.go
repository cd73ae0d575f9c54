package handler

import (
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type StaffHandler struct {
	staff ports.StaffService
}

func NewStaffHandler(staff ports.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.StaffFilter{
		Search: q.Get("search"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
		Page:   queryInt(r, "page", "1"),
		Limit:  queryInt(r, "limit", "50"),
	}

	members, total, err := h.staff.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, members, filter.Page, filter.Limit, total)
}

func (h *StaffHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.staff.ListDoctors(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, doctors)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.staff.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, member)
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ports.CreateStaffInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	member, err := h.staff.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "Thêm nhân viên thành công", member)
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch ports.StaffPatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	member, err := h.staff.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: member, Message: "Cập nhật nhân viên thành công"})
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.staff.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Xóa nhân viên thành công")
}

func (h *StaffHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.staff.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}
