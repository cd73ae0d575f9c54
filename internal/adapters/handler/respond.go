package handler

import (
	"log"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Responses follow the {data|error, message} envelope the frontend consumes.
// Error messages stay localized; the error field carries the machine string.

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type dataResponse struct {
	Data       any         `json:"data"`
	Message    string      `json:"message,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, dataResponse{Data: data, Message: message})
}

func respondMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func respondPage(w http.ResponseWriter, data any, page, limit, total int) {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	writeJSON(w, http.StatusOK, dataResponse{
		Data:       data,
		Pagination: &pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Unexpected
// errors are logged and surface as a generic 500 so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	de, ok := err.(*domain.Error)
	if !ok {
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal Server Error",
			Message: "Đã xảy ra lỗi, vui lòng thử lại sau",
		})
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation:
		status = http.StatusUnprocessableEntity
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindBusiness:
		status = http.StatusBadRequest
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindUnauthorized:
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, errorResponse{Error: de.Code, Message: de.Message})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("Invalid request payload", "Dữ liệu gửi lên không hợp lệ")
	}
	return nil
}

func queryInt(r *http.Request, name, fallback string) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		value = fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		n, _ = strconv.Atoi(fallback)
	}
	return n
}
