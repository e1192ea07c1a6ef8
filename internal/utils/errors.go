package utils

import "net/http"

// APIError is a failure that maps directly onto an HTTP status and the error envelope.
type APIError struct {
	Status  int
	Message string
	Errors  interface{}
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Response renders the error as an envelope.
func (e *APIError) Response() Response {
	resp := NewErrorResponse(e.Status, e.Message)
	resp.Errors = e.Errors
	return resp
}

// Wrap records the underlying cause for server-side logging only.
func (e *APIError) Wrap(err error) *APIError {
	e.Err = err
	return e
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func NewBadRequestError(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

func NewNotFoundError(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message)
}

func NewConflictError(message string) *APIError {
	return NewAPIError(http.StatusConflict, message)
}

func NewTooManyRequestsError(message string) *APIError {
	return NewAPIError(http.StatusTooManyRequests, message)
}

func NewInternalServerError(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, message)
}
