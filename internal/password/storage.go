// Package password exposes a single stored password
// as an optional string value.
//
// Reading looks the password up in the credential store.
// Setting it inserts or updates the record as needed,
// and deleting it removes the record.
// A [Storage] never caches the password:
// every read goes to the store.
package password

import (
	"errors"
	"unicode/utf8"

	"go.abhg.dev/pwstore/internal/attr"
	"go.abhg.dev/pwstore/internal/credential"
	"go.abhg.dev/pwstore/internal/keychain"
	"go.abhg.dev/pwstore/internal/silog"
)

//go:generate mockgen -destination mocks_test.go -package password . Backend

// Backend is the subset of keychain.Backend used by Storage.
type Backend interface {
	FindOne(query attr.Set) ([]byte, error)
	Insert(item attr.Set) error
	Update(query, changes attr.Set) error
	Delete(query attr.Set) error
}

var (
	_ Backend = (*keychain.Memory)(nil)
	_ Backend = (*keychain.File)(nil)
	_ Backend = (*keychain.Keyring)(nil)
	_ Backend = (*keychain.Ring)(nil)
)

// Strategy decides how Set chooses between inserting and updating.
type Strategy int

const (
	// ProbeFirst reads the password first,
	// and inserts if it's absent or updates if it's present.
	// If the insert finds that the record was created in the meantime,
	// it updates instead.
	//
	// This is the default.
	ProbeFirst Strategy = iota

	// InsertFirst always attempts an insert,
	// and updates only if the record already exists.
	// It skips the read, leaving the store to arbitrate existence.
	InsertFirst
)

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case ProbeFirst:
		return "probe-first"
	case InsertFirst:
		return "insert-first"
	default:
		return "unknown"
	}
}

// Options configures a Storage.
type Options struct {
	// Log receives debug messages about store operations.
	// Passwords are never logged.
	//
	// Defaults to a no-op logger.
	Log *silog.Logger

	// Strategy picks between inserting and updating on Set.
	Strategy Strategy
}

// Storage is a password in a credential store,
// addressed by a fixed identity.
type Storage struct {
	backend  Backend
	id       credential.Identity
	log      *silog.Logger
	strategy Strategy
}

// New builds a Storage for the password identified by id.
// opts may be nil.
func New(backend Backend, id credential.Identity, opts *Options) *Storage {
	if opts == nil {
		opts = &Options{}
	}

	log := opts.Log
	if log == nil {
		log = silog.Nop()
	}

	desc := credential.Describe(id)
	return &Storage{
		backend:  backend,
		id:       id,
		log:      log.With("credential", desc),
		strategy: opts.Strategy,
	}
}

// Identity returns the identity of the password.
func (s *Storage) Identity() credential.Identity {
	return s.id
}

// Lookup reads the password from the store.
//
// It returns ErrNotFound if there's no password,
// ErrCorrupt if the stored payload is not text,
// and a *StoreError if the store failed.
func (s *Storage) Lookup() (string, error) {
	query := credential.LookupAttributes(s.id).
		With(attr.KeyReturnData, attr.BoolValue(true))

	data, err := s.backend.FindOne(query)
	if err != nil {
		if errors.Is(err, keychain.ErrItemNotFound) {
			return "", ErrNotFound
		}
		return "", storeError("find", err)
	}

	if !utf8.Valid(data) {
		return "", ErrCorrupt
	}
	return string(data), nil
}

// Get reads the password from the store.
// It reports false if there's no usable password:
// store failures and corrupt payloads read as absent.
func (s *Storage) Get() (string, bool) {
	value, err := s.Lookup()
	switch {
	case err == nil:
		return value, true

	case errors.Is(err, ErrNotFound):
		// absent

	case errors.Is(err, ErrCorrupt):
		s.log.Warn("Ignoring stored password", "error", err)

	default:
		s.log.Debug("Could not read password", "error", err)
	}

	return "", false
}

// Set stores value as the password,
// inserting the record if needed.
//
// It returns ErrEncode if value is not valid UTF-8,
// and a *StoreError if the store failed.
func (s *Storage) Set(value string) error {
	if !utf8.ValidString(value) {
		return ErrEncode
	}
	data := []byte(value)

	if s.strategy == ProbeFirst {
		if _, ok := s.Get(); ok {
			return s.update(data)
		}
	}

	return s.insert(data)
}

// Delete removes the password from the store.
// Deleting a password that doesn't exist is not an error.
func (s *Storage) Delete() error {
	err := s.backend.Delete(credential.BaseAttributes(s.id))
	switch {
	case err == nil:
		s.log.Debug("Deleted password")
		return nil

	case errors.Is(err, keychain.ErrItemNotFound):
		s.log.Debug("No password to delete")
		return nil

	default:
		return storeError("delete", err)
	}
}

// Assign sets the password to *value,
// or deletes it if value is nil.
func (s *Storage) Assign(value *string) error {
	if value == nil {
		return s.Delete()
	}
	return s.Set(*value)
}

func (s *Storage) insert(data []byte) error {
	item := credential.BaseAttributes(s.id).
		With(attr.KeyValueData, attr.BytesValue(data))

	err := s.backend.Insert(item)
	switch {
	case err == nil:
		s.log.Debug("Inserted password")
		return nil

	case errors.Is(err, keychain.ErrDuplicateItem):
		// Someone else created the record since we looked,
		// or we didn't look at all.
		s.log.Debug("Password already exists, updating")
		return s.update(data)

	default:
		return storeError("insert", err)
	}
}

func (s *Storage) update(data []byte) error {
	changes := attr.New(attr.Attr{
		Key:   attr.KeyValueData,
		Value: attr.BytesValue(data),
	})

	err := s.backend.Update(credential.BaseAttributes(s.id), changes)
	switch {
	case err == nil:
		s.log.Debug("Updated password")
		return nil

	case errors.Is(err, keychain.ErrItemNotFound):
		// Deleted since we looked.
		s.log.Debug("Password disappeared before update")
		return nil

	default:
		return storeError("update", err)
	}
}
