package main

import (
	"fmt"
	"os"

	"github.com/cdileep23/go-xmlview/internal/config"
	"github.com/cdileep23/go-xmlview/internal/fileutil"
)

// defaultConfigFile is where `config init` writes without an argument.
const defaultConfigFile = "xmlview.yaml"

// runConfig dispatches the config subcommands.
func runConfig(args []string, env *Environment) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printCommandUsage(env.Stdout, "config")
		return nil
	}

	sub, rest := args[0], args[1:]
	f, rest, err := parseFlags("config", rest, env)
	if err != nil {
		return err
	}

	switch sub {
	case "init":
		return runConfigInit(f, rest, env)
	case "show":
		return runConfigShow(f, rest, env)
	case "paths":
		return runConfigPaths(rest, env)
	}
	return fmt.Errorf("%w: config %s (want init, show or paths)", ErrUnknownSubcommand, sub)
}

// runConfigInit writes the default configuration as YAML.
func runConfigInit(f *cliFlags, args []string, env *Environment) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one path", ErrTooManyArgs)
	}
	path := defaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}
	if path == stdinArg {
		return writeOutput(path, data, env)
	}

	if fileutil.FileExists(path) && !f.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}
	if err := writeOutput(path, data, env); err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
	return nil
}

// runConfigShow prints the effective configuration after the config file
// and environment are applied.
func runConfigShow(f *cliFlags, args []string, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: config show takes no arguments", ErrTooManyArgs)
	}
	cfg, err := resolveConfig(f)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeOutput("", data, env)
}

// runConfigPaths lists where a config name is searched.
func runConfigPaths(args []string, env *Environment) error {
	name := "xmlview"
	if len(args) > 0 {
		name = args[0]
	}
	for _, p := range config.SearchPaths(name) {
		marker := " "
		if fileutil.FileExists(p) {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", marker, p)
	}
	if v := os.Getenv("XMLVIEW_CONFIG"); v != "" {
		fmt.Fprintf(env.Stdout, "\nXMLVIEW_CONFIG=%s\n", v)
	}
	return nil
}
