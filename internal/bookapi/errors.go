package bookapi

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxMessageLen caps how much of a server error body is carried into the
// error message shown to the user.
const maxMessageLen = 300

// RequestError is the single failure shape for every gateway call: any
// non-2xx HTTP result or transport failure. Message carries the server's
// response body when one was provided, otherwise a generic fallback.
type RequestError struct {
	// StatusCode is the HTTP status, or 0 when the request never got a
	// response (network failure).
	StatusCode int
	Message    string

	cause error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("bookbrust api: %s", e.Message)
	}
	return fmt.Sprintf("bookbrust api: status %d: %s", e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// newRequestError builds a RequestError from a non-2xx response. The body
// text becomes the message when present and printable; otherwise a generic
// message is used. Servers in the wild return plain text, JSON blobs, or
// nothing at all here, so no particular shape is assumed.
func newRequestError(status int, body []byte) *RequestError {
	msg := strings.TrimSpace(string(body))
	if msg == "" || !utf8.ValidString(msg) {
		msg = "request failed"
	}
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}
	return &RequestError{StatusCode: status, Message: msg}
}
