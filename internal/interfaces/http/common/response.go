package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteError maps domain error kinds onto HTTP status codes.
// Persistence causes are logged and never sent to the client; fallback is
// the message used for them.
func WriteError(logger *log.Logger, w http.ResponseWriter, err error, fallback string) {
	status, message := StatusForError(err, fallback)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Printf("リクエスト処理に失敗: %v", err)
	}
	WriteJSON(logger, w, status, ErrorResponse{Error: message})
}

// StatusForError returns the status code and client-facing message for err.
func StatusForError(err error, fallback string) (int, string) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		upstream   *domain.UpstreamError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &notFound):
		return http.StatusNotFound, "Submission not found."
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, upstream.Message
	default:
		if fallback == "" {
			fallback = "Internal server error."
		}
		return http.StatusInternalServerError, fallback
	}
}
