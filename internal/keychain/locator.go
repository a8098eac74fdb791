package keychain

import (
	"fmt"

	"github.com/mtibben/percent"
	"go.abhg.dev/pwstore/internal/attr"
)

// _locatorSpecial holds the separators used by the locator encoding.
// They are percent-encoded inside each component.
const _locatorSpecial = ":/|"

func escapePart(s string) string {
	return percent.Encode(s, _locatorSpecial)
}

// locator is the address of a record in a keyring
// that only understands (service, user) pairs.
type locator struct {
	Service string
	User    string
	Sync    bool
}

// key flattens the locator into a single string.
// Service never contains a raw "|" so the first one splits the key.
func (l locator) key() string {
	return l.Service + "|" + escapePart(l.User)
}

func stringAttr(s attr.Set, key attr.Key) (string, bool) {
	v, ok := s.Get(key)
	if !ok || v.Kind() != attr.KindString {
		return "", false
	}
	return v.Str(), true
}

// locate reduces an attribute set to a keyring locator.
//
// Generic passwords map to "generic-password:[group/]service",
// internet passwords to "internet-password:[group/]protocol://server".
// Every component is percent-encoded so that
// distinct attribute sets never share a locator.
// The user is always the account.
func locate(s attr.Set) (locator, error) {
	class, ok := s.Get(attr.KeyClass)
	if !ok || class.Kind() != attr.KindTag {
		return locator{}, fmt.Errorf("missing %v: %w", attr.KeyClass, StatusParam)
	}

	account, ok := stringAttr(s, attr.KeyAccount)
	if !ok {
		return locator{}, fmt.Errorf("missing %v: %w", attr.KeyAccount, StatusParam)
	}

	var service string
	switch class.Tag() {
	case attr.ClassGenericPassword:
		service, ok = stringAttr(s, attr.KeyService)
		if !ok {
			return locator{}, fmt.Errorf("missing %v: %w", attr.KeyService, StatusParam)
		}
		service = escapePart(service)

	case attr.ClassInternetPassword:
		server, ok := stringAttr(s, attr.KeyServer)
		if !ok {
			return locator{}, fmt.Errorf("missing %v: %w", attr.KeyServer, StatusParam)
		}

		protocol := attr.ProtocolHTTPS
		if v, ok := s.Get(attr.KeyProtocol); ok && v.Kind() == attr.KindTag {
			protocol = v.Tag()
		}
		service = escapePart(protocol) + "://" + escapePart(server)

	default:
		return locator{}, fmt.Errorf("unsupported class %q: %w", class.Tag(), StatusUnimplemented)
	}

	if group, ok := stringAttr(s, attr.KeyAccessGroup); ok {
		service = escapePart(group) + "/" + service
	}
	service = class.Tag() + ":" + service

	var sync bool
	if v, ok := s.Get(attr.KeySynchronizable); ok && v.Kind() == attr.KindBool {
		sync = v.Bool()
	}

	return locator{
		Service: service,
		User:    account,
		Sync:    sync,
	}, nil
}

// changedPayload returns the payload to write from an update,
// or false if the update carries none.
func changedPayload(changes attr.Set) ([]byte, bool) {
	v, ok := changes.Get(attr.KeyValueData)
	if !ok || v.Kind() != attr.KindBytes {
		return nil, false
	}
	return v.Bytes(), true
}
