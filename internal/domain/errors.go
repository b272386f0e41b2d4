package domain

import (
	"errors"
	"fmt"
)

// Provider status codes. A response counts as successful only when the status
// is literally "OK" and the result set is non-empty.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusNotFound       = "NOT_FOUND"
	StatusInvalidRequest = "INVALID_REQUEST"
)

var errNoProvider = errors.New("no mapping provider configured")

// ProviderError is a non-success status reported by the mapping provider,
// optionally with the provider's own human-readable message.
type ProviderError struct {
	Status  string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("provider status %s", e.Status)
}

// statusMessages maps provider status codes to display text for the
// transit-scheduling client.
var statusMessages = map[string]string{
	StatusZeroResults:    "Can not route to destination",
	StatusNotFound:       "Address does not exist",
	StatusInvalidRequest: "Invalid request - please check your inputs",
}

const (
	transportErrorMessage = "Unable to reach the mapping service"
	fallbackErrorMessage  = "An error occurred"
)

// Translate converts any resolution error into a user-facing message. It is
// the only place errors become display text, and it never fails: precedence is
// the provider's own message, then the status table, then the raw status, then
// a generic transport message, then a fixed fallback.
func Translate(err error) string {
	if err == nil {
		return fallbackErrorMessage
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		if pe.Message != "" {
			return pe.Message
		}
		if msg, ok := statusMessages[pe.Status]; ok {
			return msg
		}
		if pe.Status != "" {
			return pe.Status
		}
		return fallbackErrorMessage
	}

	return transportErrorMessage
}
