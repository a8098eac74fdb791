package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.abhg.dev/pwstore/internal/silog"
)

// Source of passwords for 'set --stdin'.
var (
	_stdin           io.Reader = os.Stdin
	_stdinIsTerminal           = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

type setCmd struct {
	credentialOptions

	Stdin    bool   `name:"stdin" help:"Read the password from standard input"`
	Password string `arg:"" optional:"" help:"Password to store"`
}

func (*setCmd) Help() string {
	return "Stores a password, replacing any existing password with the same identity. " +
		"Use --stdin to keep the password out of the command line."
}

func (cmd *setCmd) Run(log *silog.Logger, backendOpts *backendOptions) error {
	value, err := cmd.password()
	if err != nil {
		return err
	}

	store, err := cmd.open(backendOpts, log)
	if err != nil {
		return err
	}

	return store.Set(value)
}

func (cmd *setCmd) password() (string, error) {
	switch {
	case cmd.Stdin && cmd.Password != "":
		return "", errors.New("cannot use --stdin with a password argument")

	case cmd.Stdin:
		if _stdinIsTerminal() {
			return "", errors.New("refusing to read a password from a terminal")
		}

		bs, err := io.ReadAll(_stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		// Drop the trailing newline added by echo and friends.
		value := strings.TrimSuffix(string(bs), "\n")
		value = strings.TrimSuffix(value, "\r")
		if value == "" {
			return "", errors.New("no password on stdin")
		}
		return value, nil

	case cmd.Password != "":
		return cmd.Password, nil

	default:
		return "", errors.New("password is required: pass it as an argument or use --stdin")
	}
}
