package database

import "errors"

// ErrNotFound is returned when a statement that targets a single todo matches no row
var ErrNotFound = errors.New("todo not found")

// Error is a storage failure. Driver, connection and constraint errors are
// all reported the same way: the failing operation plus the driver message.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
