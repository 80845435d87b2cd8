package storage

import (
	"errors"
	"fmt"
)

// Store errors.
var (
	ErrAccountExists  = errors.New("destination already holds an account")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Error reports a persistence failure for the store at Path.
type Error struct {
	Err  error
	Path string
	Op   string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Data storage error for '%s': %s", e.Path, e.Op)
	}
	return fmt.Sprintf("Data storage error for '%s': %s: %v", e.Path, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func storageError(path, op string, err error) error {
	return &Error{Path: path, Op: op, Err: err}
}
