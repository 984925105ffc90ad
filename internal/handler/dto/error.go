package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Lookup errors
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, "CARD_NOT_FOUND", message
	case errors.Is(err, domain.ErrBoardNotFound):
		return http.StatusNotFound, "BOARD_NOT_FOUND", message

	// Store errors
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict, "CONCURRENT_MODIFICATION", "card was modified concurrently, retry the request"
	case errors.Is(err, domain.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		return http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "store unavailable"

	// Validation errors
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidResetTime),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidDetails),
		errors.Is(err, domain.ErrInvalidPosition),
		errors.Is(err, domain.ErrInvalidBoardName):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
