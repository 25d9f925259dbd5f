package llm

import (
	"errors"
	"fmt"
)

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.status, e.body)
}

// newStatusError maps an HTTP failure to a typed error.
func newStatusError(status int, body string) error {
	if status == 401 || status == 403 {
		return &authError{message: body}
	}
	return &statusError{status: status, body: body}
}
