package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Error is a failed backend call: either a transport failure (Err set, Status 0)
// or a non-2xx response (Status set, Body holds the response text).
type Error struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, http.StatusText(e.Status), e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether err came from a failed backend call.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}
