package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/alecthomas/kong"
)

var _version = "dev"

type versionCmd struct {
	Short bool `help:"Print only the version number"`
}

func (cmd *versionCmd) Run(app *kong.Kong) error {
	if cmd.Short {
		fmt.Fprintln(app.Stdout, _version)
		return nil
	}

	fmt.Fprint(app.Stdout, "pwstore ", _version)
	if report := _generateBuildReport(); report != "" {
		fmt.Fprintf(app.Stdout, " (%s)", report)
	}
	fmt.Fprintln(app.Stdout)
	fmt.Fprintln(app.Stdout, "This program comes with ABSOLUTELY NO WARRANTY")
	fmt.Fprintln(app.Stdout, "This is free software, and you are welcome to redistribute it")
	fmt.Fprintln(app.Stdout, "under certain conditions; see source for details.")
	return nil
}

type versionFlag bool

func (v versionFlag) BeforeReset(app *kong.Kong) error {
	if err := (&versionCmd{}).Run(app); err != nil {
		return err
	}
	app.Exit(0)
	return nil
}

var (
	_debugReadBuildInfo  = debug.ReadBuildInfo
	_generateBuildReport = generateBuildReport
)

// generateBuildReport describes the VCS state of the build,
// or returns an empty string if that's unknown.
func generateBuildReport() string {
	info, ok := _debugReadBuildInfo()
	if !ok {
		return ""
	}

	var (
		revision string
		dirty    bool
		time     string
	)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		case "vcs.time":
			time = s.Value
		}
	}

	var report []string
	if revision != "" {
		if dirty {
			revision += "-dirty"
		}
		report = append(report, revision)
	}
	if time != "" {
		report = append(report, time)
	}
	return strings.Join(report, " ")
}
