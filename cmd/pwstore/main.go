// pwstore reads and writes passwords in the platform credential store.
package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.abhg.dev/pwstore/internal/silog"
)

func main() {
	log := silog.New(os.Stderr, &silog.Options{
		Level: silog.LevelInfo,
	})

	var cmd mainCmd
	parser, err := kong.New(&cmd,
		kong.Name("pwstore"),
		kong.Description("pwstore reads and writes passwords in the platform credential store."),
		kong.Bind(log, &cmd.backendOptions),
		kong.Vars{
			"defaultFile": defaultFilePath(),
		},
		kong.Configuration(yamlConfigLoader, defaultConfigPath()),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("pwstore: %v", err)
	}

	if err := kctx.Run(); err != nil {
		log.Fatalf("pwstore: %v", err)
	}
}

type mainCmd struct {
	backendOptions

	Verbose bool        `short:"v" help:"Enable verbose output" env:"PWSTORE_VERBOSE"`
	Version versionFlag `help:"Print version information and quit"`

	Get        getCmd     `cmd:"" help:"Print a stored password"`
	Set        setCmd     `cmd:"" help:"Store a password"`
	Delete     deleteCmd  `cmd:"" aliases:"rm" help:"Delete a stored password"`
	VersionCmd versionCmd `cmd:"" name:"version" help:"Print version information"`
}

func (cmd *mainCmd) AfterApply(log *silog.Logger) error {
	if cmd.Verbose {
		log.SetLevel(silog.LevelDebug)
	}
	return nil
}

// defaultFilePath reports where the file backend keeps records
// when --file is not set.
func defaultFilePath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "pwstore", "secrets.json")
}

// defaultConfigPath reports the location of the configuration file.
func defaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "pwstore", "config.yaml")
}

// xdgDir returns the value of the given XDG environment variable,
// falling back to a path inside the home directory.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Relative to the working directory as a last resort.
		return filepath.Join(fallback...)
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

var errNoPassword = errors.New("no password stored")
