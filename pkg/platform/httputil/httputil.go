// Package httputil centralizes JSON response envelopes and domain error
// translation so every handler returns consistent payloads.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/sentinel"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates an error into an HTTP response.
//
// Coded domain errors map to their status and expose their message as
// error_description. Store sentinels map to their natural status. Anything
// else is an internal error; the description is omitted so raw error text
// never leaks to clients.
func WriteError(w http.ResponseWriter, err error) {
	status, code, description := translate(err)

	body := map[string]string{"error": string(code)}
	if description != "" && status != http.StatusInternalServerError {
		body["error_description"] = description
	}
	WriteJSON(w, status, body)
}

func translate(err error) (int, dErrors.Code, string) {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return statusFor(de.Code), de.Code, de.Message
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return http.StatusNotFound, dErrors.CodeNotFound, "resource not found"
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return http.StatusConflict, dErrors.CodeInvariantViolation, "resource conflict"
	}
	return http.StatusInternalServerError, dErrors.CodeInternal, ""
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeInvariantViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
