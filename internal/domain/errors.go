// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist, is soft-deleted,
// or belongs to a different tenant. The three cases are deliberately
// indistinguishable to the caller.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a business-rule conflict: a second SOLD sale record
// for the same vehicle, or a natural-key collision such as a duplicate VIN.
var ErrConflict = errors.New("conflict")

// ErrInvalidQuery indicates malformed or unauthorized list-query parameters
// (bad sort syntax, unsortable field). Never retried.
var ErrInvalidQuery = errors.New("invalid query")

// ErrValidation indicates a request body that fails domain validation.
var ErrValidation = errors.New("validation failed")
