package repositories

import "errors"

// ErrNotFound is returned when a row does not exist. Callers map it to a 404
// (or a dangling-reference validation error) with errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects a write, e.g. a
// category name that is already taken.
var ErrDuplicate = errors.New("duplicate value")
