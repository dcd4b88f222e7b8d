package service

import (
	"errors"
	"fmt"

	"github.com/straye-as/sales-intelligence/internal/apiclient"
)

// Common service errors
var (
	// ErrNotAuthenticated is returned when the held credential is missing,
	// expired or rejected. Callers send the user back to login.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidInput is returned when input validation fails before any request
	ErrInvalidInput = errors.New("invalid input")
)

// classify maps an authentication failure outside the login flow to
// ErrNotAuthenticated, keeping the original error in the chain
func classify(err error) error {
	if err == nil {
		return nil
	}
	if apiclient.IsAuthError(err) {
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return err
}
