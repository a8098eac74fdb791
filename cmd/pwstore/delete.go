package main

import "go.abhg.dev/pwstore/internal/silog"

type deleteCmd struct {
	credentialOptions
}

func (*deleteCmd) Help() string {
	return "Deletes a stored password. Deleting a password that does not exist succeeds."
}

func (cmd *deleteCmd) Run(log *silog.Logger, backendOpts *backendOptions) error {
	store, err := cmd.open(backendOpts, log)
	if err != nil {
		return err
	}

	return store.Delete()
}
