package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNetwork      = errors.New("network failure")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

const networkMessage = "Network error. Please check your connection and try again."

// Error is a non-2xx answer from the DevChat API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("devchat api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("devchat api: %d %s", e.Status, e.Message)
}

// Is maps response statuses onto the sentinel errors of the taxonomy.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Status == http.StatusBadRequest
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	default:
		return false
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		e.Message = strings.TrimSpace(parsed.Message)
		if e.Message == "" {
			e.Message = strings.TrimSpace(parsed.Error)
		}
		return e
	}

	// plain-text bodies are used as-is when short enough to show
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		e.Message = text
	}
	return e
}

// Message turns err into text for a notification. Server-provided messages
// win; transport failures get a fixed hint; anything else gets fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	if errors.Is(err, ErrNetwork) {
		return networkMessage
	}

	return fallback
}
