package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commandNames lists the subcommands, in help order.
var commandNames = []string{
	"format", "highlight", "tree", "render", "preview",
	"download", "copy", "export", "serve", "config",
	"doctor", "completion", "version", "help",
}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}
	cmd, rest := args[1], args[2:]

	setMaxProcs(slices.Contains(rest, "--verbose") || slices.Contains(rest, "-v"), env)
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "format":
		err = runFormat(ctx, rest, env)
	case "highlight":
		err = runHighlight(ctx, rest, env)
	case "tree":
		err = runTree(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "preview":
		err = runPreview(ctx, rest, env)
	case "download":
		err = runDownload(ctx, rest, env)
	case "copy":
		err = runCopy(ctx, rest, env)
	case "export":
		err = runExport(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "xmlview %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	return slices.Contains(commandNames, name)
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota. The
// adjustment is only reported in verbose mode.
func setMaxProcs(verbose bool, env *Environment) {
	// maxprocs.Set fails only on an invalid GOMAXPROCS, in which case the
	// runtime default stays in place.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
