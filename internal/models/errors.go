package models

import "errors"

// Domain error taxonomy. Every error surfaced by the services and storage
// backends wraps one of these sentinels, so callers can classify failures
// with errors.Is without depending on backend-specific error types.
var (
	// ErrInvalidArgument indicates caller-supplied input violated a
	// precondition (empty id, non-positive year, malformed date). Always
	// detected before any mutation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a referenced entity does not exist where
	// existence was required. Plain lookups signal absence with a boolean
	// instead; only mutations and required references use this.
	ErrNotFound = errors.New("not found")

	// ErrOperationFailed indicates a conflict or environment failure:
	// duplicate id on create, I/O error, driver error, failed connection.
	// Driver errors are re-wrapped into this at the persistence boundary.
	ErrOperationFailed = errors.New("operation failed")
)
