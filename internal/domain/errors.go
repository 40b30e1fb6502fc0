package domain

import "errors"

// ErrNotFound is returned when the requested place does not exist in the
// collection. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing name). Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")

// ErrExtraction is returned by the AI-extraction client when the backend
// returns no usable text, returns something that is not the expected JSON
// shape, or the network call itself fails. The caller leaves the in-progress
// draft untouched and invites manual entry instead.
var ErrExtraction = errors.New("extraction failed")

// ErrImport is returned when an uploaded file cannot be parsed as a JSON
// array of places. Existing state is never mutated on this error.
var ErrImport = errors.New("import validation error")
