package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a response from the catalog API with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("catalog api: %d %s", e.Status, http.StatusText(e.Status))
}

// TransportError means the request went out but no response came back.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: no response: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// RequestError means the request was never sent.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *RequestError) Unwrap() error { return e.Err }

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	return &APIError{Status: status, Message: strings.TrimSpace(msg)}
}

// IsDuplicateSKU reports whether a product create was refused because the
// SKU is taken: a 409, or a message that mentions a duplicate or the sku.
func IsDuplicateSKU(err error) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	if ae.Status == http.StatusConflict {
		return true
	}
	msg := strings.ToLower(ae.Message)
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "sku")
}

// IsNotFound reports a 404 from the catalog API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}
