package main

import (
	"fmt"

	"go.abhg.dev/pwstore/internal/credential"
	"go.abhg.dev/pwstore/internal/keychain"
	"go.abhg.dev/pwstore/internal/password"
	"go.abhg.dev/pwstore/internal/silog"
)

// _serviceName namespaces records written by the ring backend.
const _serviceName = "pwstore"

type backendOptions struct {
	Backend string `name:"backend" enum:"keyring,ring,file" default:"keyring" env:"PWSTORE_BACKEND" help:"Credential store to use (${enum})"`
	File    string `name:"file" type:"path" placeholder:"PATH" default:"${defaultFile}" env:"PWSTORE_FILE" help:"Records file for the file backend"`
}

// _newBackend opens the credential store selected by opts.
// Tests override it to talk to a test server.
var _newBackend = newBackend

func newBackend(opts *backendOptions, log *silog.Logger) (password.Backend, error) {
	switch opts.Backend {
	case "keyring":
		return new(keychain.Keyring), nil
	case "ring":
		ring, err := keychain.OpenRing(_serviceName)
		if err != nil {
			return nil, err
		}
		return ring, nil
	case "file":
		return &keychain.File{Path: opts.File, Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", opts.Backend)
	}
}

// credentialOptions identify the password a command operates on.
type credentialOptions struct {
	Account     string `name:"account" short:"a" required:"" help:"Account name of the password"`
	Service     string `name:"service" short:"s" xor:"target" required:"" help:"Service of a generic password"`
	Server      string `name:"server" xor:"target" required:"" help:"Server of an internet password"`
	Sync        bool   `name:"sync" help:"Allow the password to sync across devices"`
	AccessGroup string `name:"access-group" placeholder:"GROUP" help:"Access group to share the password with"`
	Strategy    string `name:"strategy" enum:"probe-first,insert-first" default:"probe-first" hidden:"" help:"How to choose between inserting and updating (${enum})"`
}

func (opts *credentialOptions) identity() credential.Identity {
	var options []credential.Option
	if opts.Sync {
		options = append(options, credential.Synchronizable())
	}
	if opts.AccessGroup != "" {
		options = append(options, credential.AccessGroup(opts.AccessGroup))
	}

	if opts.Server != "" {
		return credential.NewNetwork(opts.Account, opts.Server, options...)
	}
	return credential.NewGeneric(opts.Account, opts.Service, options...)
}

func (opts *credentialOptions) strategy() password.Strategy {
	if opts.Strategy == password.InsertFirst.String() {
		return password.InsertFirst
	}
	return password.ProbeFirst
}

// open builds a Storage for the selected password
// in the selected credential store.
func (opts *credentialOptions) open(backendOpts *backendOptions, log *silog.Logger) (*password.Storage, error) {
	backend, err := _newBackend(backendOpts, log)
	if err != nil {
		return nil, fmt.Errorf("open %v backend: %w", backendOpts.Backend, err)
	}

	return password.New(backend, opts.identity(), &password.Options{
		Log:      log,
		Strategy: opts.strategy(),
	}), nil
}
