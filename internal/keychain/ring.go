package keychain

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"go.abhg.dev/pwstore/internal/attr"
)

// Ring is a credential store backed by a 99designs keyring,
// which picks between the macOS keychain, Windows credential manager,
// Secret Service, KWallet, pass, and encrypted files.
//
// Items are keyed by "service|user".
type Ring struct {
	// Keyring holds the items.
	Keyring keyring.Keyring // required

	// Label is attached to every item written.
	Label string
}

var _ Backend = (*Ring)(nil)

// OpenRing opens the platform keyring for the named service.
func OpenRing(serviceName string) (*Ring, error) {
	kr, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		return nil, ringError(err)
	}

	return &Ring{Keyring: kr, Label: serviceName}, nil
}

func ringError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrKeyNotFound):
		return ErrItemNotFound
	case errors.Is(err, keyring.ErrNoAvailImpl):
		return fmt.Errorf("%w: %w", err, StatusNotAvailable)
	default:
		return fmt.Errorf("keyring: %w", err)
	}
}

// FindOne loads the item for the query.
func (r *Ring) FindOne(query attr.Set) ([]byte, error) {
	loc, err := locate(query)
	if err != nil {
		return nil, err
	}

	item, err := r.Keyring.Get(loc.key())
	if err != nil {
		return nil, ringError(err)
	}

	if !wantsData(query) {
		return nil, nil
	}
	return item.Data, nil
}

// Insert adds a new item.
// It fails with ErrDuplicateItem if the key is already in use.
func (r *Ring) Insert(item attr.Set) error {
	loc, err := locate(item)
	if err != nil {
		return err
	}

	data, ok := changedPayload(item)
	if !ok {
		return fmt.Errorf("missing %v: %w", attr.KeyValueData, StatusParam)
	}

	switch _, err := r.Keyring.Get(loc.key()); {
	case err == nil:
		return ErrDuplicateItem
	case !errors.Is(err, keyring.ErrKeyNotFound):
		return ringError(err)
	}

	return ringError(r.Keyring.Set(keyring.Item{
		Key:                       loc.key(),
		Data:                      data,
		Label:                     r.Label,
		Description:               loc.User + " @ " + loc.Service,
		KeychainNotSynchronizable: !loc.Sync,
	}))
}

// Update replaces the data of an existing item.
func (r *Ring) Update(query, changes attr.Set) error {
	loc, err := locate(query)
	if err != nil {
		return err
	}

	item, err := r.Keyring.Get(loc.key())
	if err != nil {
		return ringError(err)
	}

	data, ok := changedPayload(changes)
	if !ok {
		return nil
	}

	item.Data = data
	return ringError(r.Keyring.Set(item))
}

// Delete removes an item.
func (r *Ring) Delete(query attr.Set) error {
	loc, err := locate(query)
	if err != nil {
		return err
	}

	// Not every keyring implementation
	// reports missing keys on removal.
	if _, err := r.Keyring.Get(loc.key()); err != nil {
		return ringError(err)
	}

	return ringError(r.Keyring.Remove(loc.key()))
}
