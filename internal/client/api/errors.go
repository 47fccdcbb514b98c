package api

import (
	"fmt"

	"github.com/scanfact/scanfact/internal/common"
)

// The adapter normalizes every failure into one of four shapes. Callers
// match them with errors.As (or errors.Is for the re-exported sentinels).

// NetworkError means no usable response was received: transport failure,
// timeout, or an unreadable body. The user-facing remedy is "try again".
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the server rejected the credential (401/403). The current
// identity must be treated as invalid; the session gate reacts by forcing
// a logout.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: status %d", e.Status)
}

func (e *AuthError) Unwrap() error { return common.ErrorUnauthorized }

// ValidationError is a 4xx with a field-level message, e.g. a duplicate
// e-mail on create. Field may be empty when the server gave no field.
type ValidationError struct {
	Status  int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NotFoundError means the id no longer exists server-side. Stores self-heal
// by dropping the id locally.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", e.Resource, common.ErrorNotFound)
}

func (e *NotFoundError) Unwrap() error { return common.ErrorNotFound }

// Re-exported sentinels for call sites that prefer errors.Is.
var (
	ErrAccountDeactivated = common.ErrAccountDeactivated
	ErrExtractionFailed   = fmt.Errorf("extraction failed: every field %q", common.NotAvailable)
)
