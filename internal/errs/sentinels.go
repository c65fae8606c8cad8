// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/controller layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a missing or malformed field on create/update.
	ErrValidation = errors.New("validation")

	// ErrUnauthorized indicates failed authentication (bad login credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrExternalService indicates a failure of an outbound collaborator (AI completion).
	ErrExternalService = errors.New("external service")

	// ErrConflict indicates a referential constraint (e.g., client still has work orders).
	ErrConflict = errors.New("conflict")
)
