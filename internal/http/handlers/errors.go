package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// StatusFor maps domain errors to HTTP status codes and error codes.
func StatusFor(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case domain.IsMissingData(err):
		return http.StatusBadRequest, "missing_data"
	case domain.IsInvalidAddress(err):
		return http.StatusBadRequest, "invalid_address"
	case domain.IsOversizedAttachment(err):
		return http.StatusRequestEntityTooLarge, "attachment_too_large"
	case domain.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case domain.IsProvider(err):
		return http.StatusBadGateway, "provider_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// RespondDomainError maps domain errors to HTTP responses. Internal errors
// never leak their cause to the client.
func RespondDomainError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "terjadi kesalahan"
	}
	respondError(c, status, code, msg, nil)
}
