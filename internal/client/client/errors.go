package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport failures: dial errors, timeouts, resets.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is returned when the server rejects the credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadResponse is returned when a response body cannot be decoded.
	ErrBadResponse = errors.New("malformed server response")
)

// APIError is a server-reported failure such as a duplicate email or a
// wrong password. A 401 APIError matches ErrUnauthorized.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
