package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal gateway
var (
	// Login errors
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrOrganizationRejected = errors.New("organization selection rejected")
	ErrBackendUnavailable   = errors.New("backend unavailable")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionNotFound  = errors.New("session not found")

	// Pending login (step-1 result) errors
	ErrPendingLoginNotFound = errors.New("pending login not found")
	ErrPendingLoginExpired  = errors.New("pending login expired")

	// Branding errors
	ErrOrganizationUnknown = errors.New("unknown organization")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
