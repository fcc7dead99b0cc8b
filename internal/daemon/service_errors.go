package daemon

import (
	"fmt"
	"net/http"
)

type ServiceErrorKind string

const (
	ServiceErrorInvalid     ServiceErrorKind = "invalid"
	ServiceErrorNotFound    ServiceErrorKind = "not_found"
	ServiceErrorTooLarge    ServiceErrorKind = "too_large"
	ServiceErrorUnavailable ServiceErrorKind = "unavailable"
)

// ServiceError is what note operations return for anything the caller should
// see. Message is the text sent to the client; Err stays in the logs.
type ServiceError struct {
	Kind    ServiceErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	message := e.Message
	if message == "" {
		message = string(e.Kind)
	}
	if e.Err == nil {
		return message
	}
	return fmt.Sprintf("%s: %v", message, e.Err)
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusCode maps the kind onto the HTTP status the notes API answers with.
func (e *ServiceError) StatusCode() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case ServiceErrorInvalid:
		return http.StatusBadRequest
	case ServiceErrorNotFound:
		return http.StatusNotFound
	case ServiceErrorTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func newServiceError(kind ServiceErrorKind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

func invalidError(message string, err error) *ServiceError {
	return newServiceError(ServiceErrorInvalid, message, err)
}

func notFoundError(message string, err error) *ServiceError {
	return newServiceError(ServiceErrorNotFound, message, err)
}

func tooLargeError(message string, err error) *ServiceError {
	return newServiceError(ServiceErrorTooLarge, message, err)
}

func unavailableError(message string, err error) *ServiceError {
	return newServiceError(ServiceErrorUnavailable, message, err)
}
