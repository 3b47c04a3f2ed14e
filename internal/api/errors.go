package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	herrors "github.com/tessro/heimdall/internal/errors"
)

var errBadResponse = herrors.ErrBadResponse

// APIError is an {"error": "..."} body returned with a success status.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusError is a non-2xx response.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, http.StatusText(e.Status))
}

// Is maps well-known statuses onto the shared sentinel errors.
func (e *StatusError) Is(target error) bool {
	switch target {
	case herrors.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case herrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case herrors.ErrTimeout:
		return e.Status == http.StatusGatewayTimeout
	case herrors.ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

// IsNotFound returns true for 404 responses.
func IsNotFound(err error) bool {
	return errors.Is(err, herrors.ErrNotFound)
}

// IsTimeout returns true for 504 responses and client-side timeouts.
func IsTimeout(err error) bool {
	return errors.Is(err, herrors.ErrTimeout)
}

// IsUnauthorized returns true for 401 responses.
func IsUnauthorized(err error) bool {
	return errors.Is(err, herrors.ErrUnauthorized)
}

// Status returns the HTTP status carried by err, or 0.
func Status(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", herrors.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", herrors.ErrNetworkError, err)
}
