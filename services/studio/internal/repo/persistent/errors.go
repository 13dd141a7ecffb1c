package persistent

import "errors"

// ErrNotFound is returned by every repository when the record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// ErrInvalidID is returned when an id is not a valid document ObjectID.
var ErrInvalidID = errors.New("invalid id")
