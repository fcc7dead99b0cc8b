package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureTransport covers requests that never produced a usable response.
	FailureTransport
	// FailureServer covers responses with a non-success status.
	FailureServer
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureServer:
		return "server"
	default:
		return "none"
	}
}

// FailureKindOf classifies an error returned by the client.
func FailureKindOf(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	if AsAPIError(err) != nil {
		return FailureServer
	}
	return FailureTransport
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error    string `json:"error"`
		Response string `json:"response"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if msg := strings.TrimSpace(payload.Response); msg != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}
