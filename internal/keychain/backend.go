// Package keychain provides credential store backends
// addressed by attribute sets.
//
// Every backend implements the same four primitives:
// find one record, insert a record,
// update records by identity, and delete records by identity.
// Failures are reported as a [Status] or an error wrapping one.
package keychain

import "go.abhg.dev/pwstore/internal/attr"

// Backend is a credential store.
type Backend interface {
	// FindOne returns the payload of the first record matching query.
	// The payload is only returned if the query asks for it
	// with attr.KeyReturnData.
	// It returns ErrItemNotFound if nothing matches.
	FindOne(query attr.Set) ([]byte, error)

	// Insert adds a new record.
	// item must carry a payload in attr.KeyValueData.
	// It returns ErrDuplicateItem if the record already exists.
	Insert(item attr.Set) error

	// Update applies changes to records matching query.
	// It returns ErrItemNotFound if nothing matches.
	Update(query, changes attr.Set) error

	// Delete removes records matching query.
	// It returns ErrItemNotFound if nothing matches.
	Delete(query attr.Set) error
}
