package service

import (
	"errors"
	"fmt"
)

// ErrInvalidUsername is returned before any network or storage call when the
// username is empty, too long, or contains characters outside [A-Za-z0-9._].
var ErrInvalidUsername = errors.New("invalid username")

// ErrUserNotFound is returned by read operations for usernames with no
// stored profile. It is a normal outcome, not an exceptional one.
var ErrUserNotFound = errors.New("user not found in database")

// FetchError signals an upstream fetch failure; it aborts the pipeline
// before any save is attempted.
type FetchError struct {
	Username string
	// StatusCode is the upstream HTTP status when one was received, 0 for
	// transport-level failures.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch profile %q: %v", e.Username, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StoreError signals a persistence failure. On the fetch-and-save write path
// it is logged and swallowed; read paths surface it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
