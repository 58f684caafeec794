// Package response writes the API's standard JSON envelopes: successes as
// {"success": true, ...payload} and errors as {"error": msg, "details"?: msg}.
package response

import (
	"encoding/json"
	"net/http"
)

// includeDetails controls whether error details reach the client. Set once at
// startup; production deployments keep it off.
var includeDetails = true

// IncludeDetails toggles detail exposure on error responses.
func IncludeDetails(v bool) {
	includeDetails = v
}

// Envelope is a flat success payload merged with {"success": true}.
type Envelope map[string]interface{}

type errorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes any payload with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Success writes the standard success envelope.
func Success(w http.ResponseWriter, statusCode int, payload Envelope) {
	if payload == nil {
		payload = Envelope{}
	}
	payload["success"] = true
	JSON(w, statusCode, payload)
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, errorBody{Error: message})
}

// ErrorWithDetails writes an error envelope carrying extra diagnostic detail
// when detail exposure is enabled.
func ErrorWithDetails(w http.ResponseWriter, statusCode int, message string, details interface{}) {
	if !includeDetails {
		details = nil
	}
	JSON(w, statusCode, errorBody{Error: message, Details: details})
}

// BadRequest is the 400 shorthand.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound is the 404 shorthand.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

// Unauthorized is the 401 shorthand.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden is the 403 shorthand.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message)
}

// InternalServerError is the 500 shorthand; details are stripped in
// production.
func InternalServerError(w http.ResponseWriter, message string, details interface{}) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorWithDetails(w, http.StatusInternalServerError, message, details)
}

// ValidationFailed writes a 400 with per-field messages as details.
func ValidationFailed(w http.ResponseWriter, errors map[string]string) {
	ErrorWithDetails(w, http.StatusBadRequest, "Validation failed", errors)
}
