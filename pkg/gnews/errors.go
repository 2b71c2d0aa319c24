package gnews

import (
	"fmt"
	"strings"
)

// TransportError is returned when the API could not be reached or
// responded with a non-2xx status.
type TransportError struct {
	// StatusCode is zero if no response was received.
	StatusCode int
	// Message contains error messages reported by the API, if any.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	sb := &strings.Builder{}
	_, _ = sb.WriteString("gnews transport error")
	if e.StatusCode != 0 {
		_, _ = fmt.Fprintf(sb, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		_, _ = fmt.Fprintf(sb, ": %s", e.Message)
	}
	if e.Err != nil {
		_, _ = fmt.Fprintf(sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is returned when the response body does not match the expected
// article list shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("gnews parse error: %v", e.Err) }

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }
