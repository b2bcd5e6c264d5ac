package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler.nil_response")

	// ErrNilRenderer indicates a View response without a renderer.
	ErrNilRenderer = errors.New("handler.nil_renderer")
)

// HTTPError carries a status code and a stable message key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed    = NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrUnsupportedMedia    = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessable       = NewHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)
