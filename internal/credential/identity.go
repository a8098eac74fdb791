// Package credential defines the identities that address
// a single password record in a credential store.
//
// An [Identity] is either a [Generic] password,
// scoped by service and account,
// or a [Network] password, scoped by server and account.
// [BaseAttributes] and [LookupAttributes] turn an identity
// into the attribute sets sent to the store.
package credential

import (
	"fmt"

	"go.abhg.dev/pwstore/internal/attr"
)

// Identity is one of [Generic] or [Network].
type Identity interface {
	identity() // sealed
}

var (
	_ Identity = Generic{}
	_ Identity = Network{}
)

// Generic is a password scoped to a service and an account.
type Generic struct {
	Account string // required
	Service string // required

	// Synchronizable allows the store to propagate the record
	// across the user's devices.
	Synchronizable bool

	// AccessGroup restricts the record to a group of applications.
	// Empty means no access group.
	AccessGroup string
}

func (Generic) identity() {}

// Network is an internet password scoped to a server and an account.
// The protocol is always HTTPS.
type Network struct {
	Account string // required
	Server  string // required

	// Synchronizable allows the store to propagate the record
	// across the user's devices.
	Synchronizable bool

	// AccessGroup restricts the record to a group of applications.
	// Empty means no access group.
	AccessGroup string
}

func (Network) identity() {}

// Option customizes an identity created with [NewGeneric] or [NewNetwork].
type Option func(*options)

type options struct {
	sync  bool
	group string
}

// Synchronizable marks the credential as synchronizable across devices.
func Synchronizable() Option {
	return func(o *options) { o.sync = true }
}

// AccessGroup places the credential in the given access group.
func AccessGroup(group string) Option {
	return func(o *options) { o.group = group }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewGeneric builds a [Generic] identity.
func NewGeneric(account, service string, opts ...Option) Generic {
	o := buildOptions(opts)
	return Generic{
		Account:        account,
		Service:        service,
		Synchronizable: o.sync,
		AccessGroup:    o.group,
	}
}

// NewNetwork builds a [Network] identity.
func NewNetwork(account, server string, opts ...Option) Network {
	o := buildOptions(opts)
	return Network{
		Account:        account,
		Server:         server,
		Synchronizable: o.sync,
		AccessGroup:    o.group,
	}
}

// BaseAttributes returns the attributes that uniquely address
// the record for id.
//
// Optional attributes are left out entirely when unset:
// some stores treat an explicit false or empty value
// differently from an absent one.
func BaseAttributes(id Identity) attr.Set {
	var (
		s     attr.Set
		sync  bool
		group string
	)

	switch id := id.(type) {
	case Generic:
		s = s.
			With(attr.KeyClass, attr.TagValue(attr.ClassGenericPassword)).
			With(attr.KeyAccount, attr.StringValue(id.Account)).
			With(attr.KeyService, attr.StringValue(id.Service))
		sync, group = id.Synchronizable, id.AccessGroup

	case Network:
		s = s.
			With(attr.KeyClass, attr.TagValue(attr.ClassInternetPassword)).
			With(attr.KeyAccount, attr.StringValue(id.Account)).
			With(attr.KeyServer, attr.StringValue(id.Server)).
			With(attr.KeyProtocol, attr.TagValue(attr.ProtocolHTTPS))
		sync, group = id.Synchronizable, id.AccessGroup

	default:
		panic(fmt.Sprintf("credential: unknown identity type %T", id))
	}

	if sync {
		s = s.With(attr.KeySynchronizable, attr.BoolValue(true))
	}
	if group != "" {
		s = s.With(attr.KeyAccessGroup, attr.StringValue(group))
	}
	return s
}

// LookupAttributes returns the attributes used to find the record for id.
// It is [BaseAttributes] limited to at most one match,
// in case the store holds records not created through this package.
func LookupAttributes(id Identity) attr.Set {
	return BaseAttributes(id).
		With(attr.KeyMatchLimit, attr.TagValue(attr.MatchLimitOne))
}

// Describe returns a short label for id suitable for logs.
// It never includes secret material.
func Describe(id Identity) string {
	var label, group string
	switch id := id.(type) {
	case Generic:
		label = "generic:" + id.Service + "/" + id.Account
		group = id.AccessGroup
	case Network:
		label = "network:" + attr.ProtocolHTTPS + "://" + id.Server + "/" + id.Account
		group = id.AccessGroup
	default:
		return fmt.Sprintf("unknown:%T", id)
	}

	if group != "" {
		label += " (" + group + ")"
	}
	return label
}
