// Package cli provides the command-line interface for flowdigest.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to flowdigest.yaml (default: ./flowdigest.yaml if present)",
		EnvVars: []string{"FLOWDIGEST_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Log file path (overrides log.file from config)",
		EnvVars: []string{"FLOWDIGEST_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable debug logging",
		EnvVars: []string{"FLOWDIGEST_VERBOSE"},
	},
}

// NewApp builds the application. Command output goes to stdout.
func NewApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:    "flowdigest",
		Usage:   "Turn a recorded flow.json into interactions, a summary and a social image",
		Version: Version,
		Description: `flowdigest reads a recorded interactive product walkthrough (flow.json)
and produces human-readable artifacts from it.

Examples:
  flowdigest interactions
  flowdigest summary --input demo/flow.json --output demo/summary.md
  flowdigest image
  flowdigest run
  flowdigest validate flows/`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			interactionsCommand,
			summaryCommand,
			imageCommand,
			runCommand,
			validateCommand,
		},
		Writer:    stdout,
		ErrWriter: stderr,
	}
}

// Execute runs the CLI.
func Execute() {
	app := NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
