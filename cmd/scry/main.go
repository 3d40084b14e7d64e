// Package main implements scry, a spaced repetition tool for flashcards kept
// in markdown files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

// Exit codes returned by run.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// command is one scry subcommand. It returns errUsage for bad arguments.
type command func(ctx context.Context, env *cliEnv, args []string) error

var commands = map[string]command{
	"drill":   runDrill,
	"create":  runCreate,
	"stats":   runStats,
	"serve":   runServe,
	"migrate": runMigrate,
	"import":  runImport,
}

// errUsage marks an error caused by bad command-line arguments.
var errUsage = errors.New("usage error")

// cliEnv is what every subcommand receives from run.
type cliEnv struct {
	configPath string
	stdout     io.Writer
	stderr     io.Writer
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	env := &cliEnv{stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet("scry", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&env.configPath, "config", "", "Config file (default: scry.yaml in . or $XDG_CONFIG_HOME/scry)")
	fs.Usage = func() { printHelp(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if fs.NArg() == 0 {
		printHelp(stderr)
		return exitUsage
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	switch name {
	case "version":
		fmt.Fprintf(stdout, "scry %s\n", version)
		return exitOK
	case "help":
		printHelp(stdout)
		return exitOK
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q\n", name)
		printHelp(stderr)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd(ctx, env, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `scry %s - spaced repetition for markdown flashcards

Usage:
  scry [--config FILE] <command> [flags] [PATHS...]

Commands:
  drill    [--card-limit N] [--new-card-limit N] [PATHS...]  show the cards due for review
  create   --path FILE (-q QUESTION -a ANSWER | -c CLOZE)    append a card to a markdown file
  stats    [--format text|json|yaml] [PATHS...]               report deck statistics
  serve    [--port N] [PATHS...]                              serve the reporting API
  migrate  up|down|reset|status|version                       manage the card database schema
  import   FILE                                               load review states from YAML or JSON
  version                                                     print the version

PATHS default to the current directory.
`, version)
}
