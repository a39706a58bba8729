package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes at the boundary; anything not matched here is treated
// as a storage failure.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email/password")
	ErrNotPending         = errors.New("report is not pending")
)
