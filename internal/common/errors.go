// Package common defines shared constants and sentinel errors used across
// client and server layers of scanfact. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Duplicate unique field (e.g. e-mail already registered).
	ErrorAlreadyExists = errors.New("already exists")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Login against a deactivated account. Distinct from bad credentials so
	// the UI can show a dedicated message.
	ErrAccountDeactivated = errors.New("account deactivated")
)
