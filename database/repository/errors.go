package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Services map it
// to their own domain error kinds.
var ErrNotFound = errors.New("record not found")
