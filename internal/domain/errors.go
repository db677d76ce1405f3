package domain

import "errors"

// Error taxonomy. Callers translate library and network failures into one
// of these at the boundary nearest the failure; nothing propagates to the
// user unclassified.
var (
	// ErrSessionNotFound is returned for lookups of unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCredentialRequired means online mode was requested without an API
	// key. Chat surfaces it; summarize/title degrade to heuristics instead.
	ErrCredentialRequired = errors.New("api key is required for online mode")

	// ErrInvalidCredential means the cloud provider rejected the key.
	ErrInvalidCredential = errors.New("invalid or unauthorized api key")

	// ErrQuotaExceeded means the cloud provider reported quota or rate
	// limiting. Never retried.
	ErrQuotaExceeded = errors.New("api quota exceeded")

	// ErrBackendUnavailable means the local inference backend could not be
	// reached. No retry; the caller decides whether to degrade.
	ErrBackendUnavailable = errors.New("local inference backend is not running")

	// ErrModelNotLoaded means the backend is up but the required model slot
	// is not ready.
	ErrModelNotLoaded = errors.New("model not loaded")
)
