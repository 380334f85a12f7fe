package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// conflictMarker is the backend's concurrency-failure fingerprint. The
// backend surfaces racing cart writes as a generic 500 whose body carries
// this marker, or sometimes as a 500 with no body at all.
const conflictMarker = "DbUpdateConcurrencyException"

// Error is a normalized failed API call. StatusCode is zero for
// transport-level failures that never produced a response.
type Error struct {
	StatusCode int
	Message    string
	Body       string
}

// Error renders the "<statusCode>: <message>" form every caller displays.
func (e *Error) Error() string {
	status := "Unknown"
	if e.StatusCode != 0 {
		status = strconv.Itoa(e.StatusCode)
	}
	return status + ": " + e.Message
}

// IsConcurrencyError reports whether err is a transient concurrency conflict:
// HTTP status exactly 500 and a body that either carries the known conflict
// marker or is empty. The empty-body case is intentionally broad; the backend
// is known to return bare 500s when two writes race.
func IsConcurrencyError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode != 500 {
		return false
	}
	return strings.Contains(apiErr.Body, conflictMarker) || strings.TrimSpace(apiErr.Body) == ""
}

// ErrorMessage extracts the display message from any error returned by the
// client, falling back to the raw error text for non-API errors.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// extractMessage pulls a human-readable message out of a failed response
// body. Preference order: a string body (plain text or JSON-encoded string),
// a "message" field, an "error" field, then "Request failed".
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "Request failed"
	}

	var str string
	if err := json.Unmarshal([]byte(trimmed), &str); err == nil && str != "" {
		return str
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		// JSON without a recognizable message field.
		return "Request failed"
	}
	return trimmed
}
