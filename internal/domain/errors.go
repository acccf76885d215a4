package domain

import "errors"

// ErrNotFound is returned when the requested trip, day, item, or place does
// not exist. Engine mutations that address a missing item treat it as a
// no-op instead; this error is only surfaced by lookups.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input violates a field contract
// (e.g. empty item title, malformed date, unknown category).
// The operation that returned it has had no side effect.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPersistenceRead is returned when the stored trip collection cannot be
// decoded. The caller recovers by substituting the default seed.
var ErrPersistenceRead = errors.New("persisted state unreadable")

// ErrExternalFetch is returned when a third-party source (catalog sheet,
// translation service) fails. It never reaches the trip data model.
var ErrExternalFetch = errors.New("external fetch failed")

// ErrConfirmationRequired is returned by destructive operations (full
// collection import, trip delete) when the caller has not confirmed.
// Handlers should map this to HTTP 409 Conflict.
var ErrConfirmationRequired = errors.New("confirmation required")
