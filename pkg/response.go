package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// APIResponse, tüm API yanıtları için standart format.
// Client her zaman aynı yapıyı bekler: success flag + mesaj + data.
// Error alanı sadece beklenmeyen (500) hatalarda doludur —
// domain hatalarının detayı Message'da taşınır.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı bir yanıt gönderir.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları TEK bir noktadan HTTP status code'a çevrilir —
// her handler'da ayrı ayrı status seçilmez.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{Success: false}
	if status == http.StatusInternalServerError {
		// Beklenmeyen hata — genel mesaj + altta yatan hata metni
		resp.Message = "an unexpected error occurred"
		resp.Error = err.Error()
	} else {
		resp.Message = err.Error()
	}

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
// Middleware gibi domain error üretmeyen noktalarda kullanılır.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() error chain'ini kontrol eder — wrap edilmiş error'lar da match eder.
//
// API kontratı gereği tüm domain hataları 400 döner; client success flag'ine
// ve mesaja bakar. Sadece beklenmeyen hatalar 500'dür.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrUploadFailed),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
