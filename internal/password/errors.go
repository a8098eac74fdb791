package password

import (
	"errors"
	"fmt"

	"go.abhg.dev/pwstore/internal/keychain"
)

var (
	// ErrNotFound indicates that no password is stored.
	ErrNotFound = errors.New("password not found")

	// ErrCorrupt indicates that a record exists
	// but its payload is not valid UTF-8 text.
	ErrCorrupt = errors.New("stored password is not valid UTF-8")

	// ErrEncode indicates that a password could not be encoded
	// for storage because it is not valid UTF-8 text.
	ErrEncode = errors.New("password is not valid UTF-8")
)

// StoreError is returned when the credential store
// fails an operation for a reason other than a missing record.
type StoreError struct {
	// Op is the failed operation:
	// one of "find", "insert", "update", or "delete".
	Op string

	// Status is the code reported by the store.
	Status keychain.Status

	// Err is the error reported by the store.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s password: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) *StoreError {
	return &StoreError{
		Op:     op,
		Status: keychain.StatusOf(err),
		Err:    err,
	}
}
