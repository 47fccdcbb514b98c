// Package services implements the use cases of the invoice backend on
// top of the storage repositories: authentication, role-scoped listing
// and the entity transitions the client drives.
package services

import "fmt"

// ValidationError reports a rejected request payload. Field names the
// offending input when known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}
