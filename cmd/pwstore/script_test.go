package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/pwstore/internal/keychain"
	"go.abhg.dev/pwstore/internal/keychain/keychaintest"
	"go.abhg.dev/pwstore/internal/password"
	"go.abhg.dev/pwstore/internal/silog"
)

var (
	_update = flag.Bool("update", false, "update golden files")
	_debug  = flag.Bool("debug", false, "enable debug logging")
)

func TestMain(m *testing.M) {
	// Always override the backend with an in-memory store
	// so that tests don't accidentally use the system keyring.
	_newBackend = func(*backendOptions, *silog.Logger) (password.Backend, error) {
		return new(keychain.Memory), nil
	}

	os.Exit(testscript.RunMain(m, map[string]func() int{
		"pwstore": func() int {
			// The keyring and ring backends are replaced
			// by the test server when one is configured.
			// The file backend is used as-is.
			if srvURL := os.Getenv("PWSTORE_TEST_SERVER_URL"); srvURL != "" {
				client, err := keychaintest.NewClient(srvURL)
				if err != nil {
					silog.New(os.Stderr, nil).Fatalf("Could not create test server client: %v", err)
				}

				_newBackend = func(opts *backendOptions, log *silog.Logger) (password.Backend, error) {
					if opts.Backend == "file" {
						return newBackend(opts, log)
					}
					return client, nil
				}
			}

			main()
			return 0
		},
	}))
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                filepath.Join("testdata", "script"),
		UpdateScripts:      *_update,
		RequireUniqueNames: true,
		Setup: func(e *testscript.Env) error {
			t := e.T().(testing.TB)

			homeDir := filepath.Join(e.WorkDir, "home")
			require.NoError(t, os.MkdirAll(homeDir, 0o755))
			e.Setenv("HOME", homeDir)
			e.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
			e.Setenv("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share"))

			if *_debug {
				e.Setenv("PWSTORE_VERBOSE", "true")
			}

			srv := keychaintest.NewServer(t)
			t.Logf("Test server URL: %s", srv.URL())
			e.Setenv("PWSTORE_TEST_SERVER_URL", srv.URL())
			return nil
		},
	})
}
