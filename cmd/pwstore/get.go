package main

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"
	"go.abhg.dev/pwstore/internal/password"
	"go.abhg.dev/pwstore/internal/silog"
)

type getCmd struct {
	credentialOptions
}

func (*getCmd) Help() string {
	return "Prints the password to stdout followed by a newline. " +
		"Fails if no password is stored."
}

func (cmd *getCmd) Run(app *kong.Kong, log *silog.Logger, backendOpts *backendOptions) error {
	store, err := cmd.open(backendOpts, log)
	if err != nil {
		return err
	}

	value, err := store.Lookup()
	if err != nil {
		if errors.Is(err, password.ErrNotFound) {
			return errNoPassword
		}
		return err
	}

	_, err = fmt.Fprintln(app.Stdout, value)
	return err
}
