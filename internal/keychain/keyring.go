package keychain

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
	"go.abhg.dev/pwstore/internal/attr"
)

// Keyring is a credential store backed by the system's keychain,
// if available.
//
// Records are addressed by service and user only,
// so the synchronizable flag is not honored.
//
// Its zero value is ready for use.
type Keyring struct {
	// Prefix is prepended to every service name.
	Prefix string
}

var _ Backend = (*Keyring)(nil)

func (k *Keyring) locate(s attr.Set) (locator, error) {
	loc, err := locate(s)
	if err != nil {
		return loc, err
	}
	loc.Service = k.Prefix + loc.Service
	return loc, nil
}

// keyringError translates go-keyring errors into statuses.
func keyringError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrItemNotFound
	case errors.Is(err, keyring.ErrSetDataTooBig):
		return fmt.Errorf("%w: %w", err, StatusParam)
	case errors.Is(err, keyring.ErrUnsupportedPlatform):
		return fmt.Errorf("%w: %w", err, StatusNotAvailable)
	default:
		return fmt.Errorf("keyring: %w", err)
	}
}

// FindOne loads the secret for the query from the keyring.
func (k *Keyring) FindOne(query attr.Set) ([]byte, error) {
	loc, err := k.locate(query)
	if err != nil {
		return nil, err
	}

	secret, err := keyring.Get(loc.Service, loc.User)
	if err != nil {
		return nil, keyringError(err)
	}

	if !wantsData(query) {
		return nil, nil
	}
	return []byte(secret), nil
}

// Insert saves a new secret in the keyring.
// It fails with ErrDuplicateItem if the keyring already holds one.
func (k *Keyring) Insert(item attr.Set) error {
	loc, err := k.locate(item)
	if err != nil {
		return err
	}

	data, ok := changedPayload(item)
	if !ok {
		return fmt.Errorf("missing %v: %w", attr.KeyValueData, StatusParam)
	}

	switch _, err := keyring.Get(loc.Service, loc.User); {
	case err == nil:
		return ErrDuplicateItem
	case !errors.Is(err, keyring.ErrNotFound):
		return keyringError(err)
	}

	return keyringError(keyring.Set(loc.Service, loc.User, string(data)))
}

// Update replaces an existing secret in the keyring.
func (k *Keyring) Update(query, changes attr.Set) error {
	loc, err := k.locate(query)
	if err != nil {
		return err
	}

	if _, err := keyring.Get(loc.Service, loc.User); err != nil {
		return keyringError(err)
	}

	data, ok := changedPayload(changes)
	if !ok {
		return nil // nothing else is stored
	}

	return keyringError(keyring.Set(loc.Service, loc.User, string(data)))
}

// Delete removes a secret from the keyring.
func (k *Keyring) Delete(query attr.Set) error {
	loc, err := k.locate(query)
	if err != nil {
		return err
	}

	return keyringError(keyring.Delete(loc.Service, loc.User))
}
