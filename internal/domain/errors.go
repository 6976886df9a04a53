package domain

import "errors"

// Sentinel errors. Services wrap them with context; handlers map them to
// status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// ErrLoad marks a storage failure while assembling a dashboard view. The cause
// is wrapped alongside it and never shown to clients.
var ErrLoad = errors.New("load failed")
