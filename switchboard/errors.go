package switchboard

import (
	"errors"
	"fmt"
)

// Errors returned by the Switchboard client.
var (
	// ErrServer indicates the API failed with a 5xx status.
	ErrServer = errors.New("OA Switchboard server error")

	// ErrRequirements indicates the API rejected the request with a 4xx
	// status, such as bad credentials or a message it would not accept.
	ErrRequirements = errors.New("OA Switchboard requirements not met")

	// ErrUnexpectedStatus indicates any other non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected OA Switchboard response status")

	// ErrNetwork indicates a network connectivity issue.
	ErrNetwork = errors.New("network error communicating with OA Switchboard")

	// ErrInvalidResponse indicates a response body that could not be used.
	ErrInvalidResponse = errors.New("invalid response from OA Switchboard")

	// ErrMissingCredentials indicates an empty email or password.
	ErrMissingCredentials = errors.New("OA Switchboard credentials are not configured")
)

// APIError is a non-2xx response from the Switchboard API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string // Response body, truncated
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s (status %d): %s", e.class(), e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.class(), e.Endpoint, e.StatusCode)
}

// Unwrap returns ErrServer, ErrRequirements or ErrUnexpectedStatus.
func (e *APIError) Unwrap() error {
	return e.class()
}

func (e *APIError) class() error {
	switch {
	case e.StatusCode >= 500 && e.StatusCode < 600:
		return ErrServer
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrRequirements
	default:
		return ErrUnexpectedStatus
	}
}

// IsServerError returns true if the API failed on its side.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsRequirementsError returns true if the API rejected the request.
func IsRequirementsError(err error) bool {
	return errors.Is(err, ErrRequirements)
}

// IsAuthError returns true if the error is a rejected authorization.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrMissingCredentials) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint == AuthorizeEndpoint && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}
	return false
}
