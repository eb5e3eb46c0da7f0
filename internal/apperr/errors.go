package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized indicates a missing or invalid rider session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the session may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUpstream indicates that the commerce backend failed to answer.
var ErrUpstream = errors.New("upstream failure")

// ErrPartialFailure indicates that a multi-item status update stopped half way.
var ErrPartialFailure = errors.New("partial failure")
