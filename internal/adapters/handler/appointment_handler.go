package handler

import (
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

type AppointmentHandler struct {
	scheduling ports.SchedulingService
}

func NewAppointmentHandler(scheduling ports.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{scheduling: scheduling}
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.AppointmentFilter{
		Date:      q.Get("date"),
		DoctorID:  q.Get("doctorId"),
		PatientID: q.Get("patientId"),
		Status:    q.Get("status"),
		Page:      queryInt(r, "page", "1"),
		Limit:     queryInt(r, "limit", "50"),
	}

	appointments, err := h.scheduling.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	availability, err := h.scheduling.CheckAvailability(
		r.Context(), q.Get("doctorId"), q.Get("date"), q.Get("time"), q.Get("excludeId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.scheduling.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ports.CreateAppointmentInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	appointment, err := h.scheduling.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "Tạo lịch hẹn thành công", appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch ports.AppointmentPatch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	appointment, err := h.scheduling.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: appointment, Message: "Cập nhật lịch hẹn thành công"})
}

func (h *AppointmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.scheduling.CheckIn(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: appointment, Message: "Check-in thành công"})
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.scheduling.Complete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: appointment, Message: "Hoàn thành lịch hẹn"})
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	// body is optional for cancellations
	_ = json.NewDecoder(r.Body).Decode(&body)

	appointment, err := h.scheduling.Cancel(r.Context(), r.PathValue("id"), body.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: appointment, Message: "Hủy lịch hẹn thành công"})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduling.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Xóa lịch hẹn thành công")
}
