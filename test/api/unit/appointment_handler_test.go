package unit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/handler"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

// newAppointmentMux wires the real service and handler over the mocks, with
// the same route patterns the API server registers. Requests go through the
// mux so r.PathValue resolves.
func newAppointmentMux(appts *mocks.MockAppointmentRepository, patients *mocks.MockPatientRepository, staff *mocks.MockStaffRepository) *http.ServeMux {
	service := services.NewSchedulingService(appts, patients, staff)
	h := handler.NewAppointmentHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/appointments/check-availability", h.CheckAvailability)
	mux.HandleFunc("POST /api/appointments", h.Create)
	mux.HandleFunc("GET /api/appointments/{id}", h.Get)
	mux.HandleFunc("PATCH /api/appointments/{id}/cancel", h.Cancel)
	mux.HandleFunc("PATCH /api/appointments/{id}/checkin", h.CheckIn)
	return mux
}

func newAppointmentTestEnv() (*http.ServeMux, *mocks.MockAppointmentRepository) {
	appts := mocks.NewMockAppointmentRepository()
	patients := mocks.NewMockPatientRepository()
	staff := mocks.NewMockStaffRepository()
	patients.SeedPatient(mocks.TestPatient("patient-1"))
	staff.SeedStaff(mocks.TestDoctor("doctor-1"))
	return newAppointmentMux(appts, patients, staff), appts
}

func TestAppointmentHandler_Create(t *testing.T) {
	mux, _ := newAppointmentTestEnv()

	body, _ := json.Marshal(map[string]any{
		"patientId": "patient-1",
		"doctorId":  "doctor-1",
		"date":      "2026-09-01",
		"time":      "09:00",
		"reason":    "Khám định kỳ",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("expected appointment id in response")
	}
	if resp.Data.Status != "scheduled" {
		t.Errorf("expected scheduled status, got %q", resp.Data.Status)
	}
	if resp.Message != "Tạo lịch hẹn thành công" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAppointmentHandler_Create_Conflict(t *testing.T) {
	mux, appts := newAppointmentTestEnv()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	body, _ := json.Marshal(map[string]any{
		"patientId": "patient-1",
		"doctorId":  "doctor-1",
		"date":      "2026-09-01",
		"time":      "09:00",
		"reason":    "Khám định kỳ",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error != "Time slot conflict" {
		t.Errorf("unexpected error code %q", resp.Error)
	}
	if resp.Message != "Thời gian này đã có lịch hẹn khác" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestAppointmentHandler_Create_ValidationStatus(t *testing.T) {
	mux, _ := newAppointmentTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader([]byte(`{"patientId":"patient-1"}`)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestAppointmentHandler_CheckAvailability(t *testing.T) {
	mux, appts := newAppointmentTestEnv()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	req := httptest.NewRequest(http.MethodGet,
		"/api/appointments/check-availability?doctorId=doctor-1&date=2026-09-01&time=09:00", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Available   bool            `json:"available"`
		Conflicting json.RawMessage `json:"conflicting"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Available {
		t.Error("expected unavailable slot")
	}
	if string(resp.Conflicting) == "null" {
		t.Error("expected conflicting appointment in response")
	}
}

func TestAppointmentHandler_Get_NotFound(t *testing.T) {
	mux, _ := newAppointmentTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// Cancel accepts an empty body; the reason is optional.
func TestAppointmentHandler_Cancel_EmptyBody(t *testing.T) {
	mux, appts := newAppointmentTestEnv()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/appt-1/cancel", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(appts.CancelCalls) != 1 {
		t.Errorf("expected 1 Cancel call, got %d", len(appts.CancelCalls))
	}
}

func TestAppointmentHandler_CheckIn_DoubleCheckInIsBadRequest(t *testing.T) {
	mux, appts := newAppointmentTestEnv()
	appts.SeedAppointment(mocks.TestAppointment("appt-1", "patient-1", "doctor-1"))

	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/appt-1/checkin", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on first check-in, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/appointments/appt-1/checkin", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on second check-in, got %d", rec.Code)
	}
}
