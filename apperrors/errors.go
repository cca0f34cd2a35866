package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"carnes-boutique/reconciliation"
	"carnes-boutique/repository"
	"carnes-boutique/service"
)

// Error represents an application error returned to HTTP clients
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest is a 400 with a caller-facing message
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrUnprocessable      = New(http.StatusUnprocessableEntity, "Unprocessable entity", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// FromError maps a domain error to the HTTP error the client sees. Messages of
// expected failures are passed through; anything else becomes a bare 500.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, reconciliation.ErrItemNotFound),
		errors.Is(err, reconciliation.ErrNoRegionalPrice),
		errors.Is(err, service.ErrEmptyImport):
		return New(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, reconciliation.ErrInvalidWeight),
		errors.Is(err, reconciliation.ErrEmptyReport),
		errors.Is(err, reconciliation.ErrUnreadableLine),
		errors.Is(err, service.ErrRegionRequired),
		errors.Is(err, service.ErrUnknownRegion),
		errors.Is(err, service.ErrPhoneRequired):
		return New(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrNoPriceList):
		return New(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrDriveNotConfigured),
		errors.Is(err, service.ErrSenderNotConfigured):
		return New(http.StatusServiceUnavailable, err.Error(), err)
	}
	return New(ErrInternalServer.Code, ErrInternalServer.Message, err)
}

// HandleError writes err as a JSON error response
func HandleError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}
