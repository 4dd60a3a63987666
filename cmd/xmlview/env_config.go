package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cdileep23/go-xmlview/internal/config"
)

const envPrefix = "XMLVIEW_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // XMLVIEW_CONFIG: config file name or path
	Style      string        // XMLVIEW_STYLE: preview stylesheet name
	Timeout    time.Duration // XMLVIEW_TIMEOUT: PDF export timeout
	OutputDir  string        // XMLVIEW_OUTPUT_DIR: default output directory
	PageSize   string        // XMLVIEW_PAGE_SIZE: letter, a4, legal
	Workers    int           // XMLVIEW_WORKERS: parallel exports
	Addr       string        // XMLVIEW_ADDR: preview server address
}

// knownEnvVars lists valid XMLVIEW_* environment variables.
var knownEnvVars = map[string]bool{
	"XMLVIEW_CONFIG":     true,
	"XMLVIEW_STYLE":      true,
	"XMLVIEW_TIMEOUT":    true,
	"XMLVIEW_OUTPUT_DIR": true,
	"XMLVIEW_PAGE_SIZE":  true,
	"XMLVIEW_WORKERS":    true,
	"XMLVIEW_ADDR":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("XMLVIEW_CONFIG"),
		Style:      os.Getenv("XMLVIEW_STYLE"),
		OutputDir:  os.Getenv("XMLVIEW_OUTPUT_DIR"),
		PageSize:   os.Getenv("XMLVIEW_PAGE_SIZE"),
		Addr:       os.Getenv("XMLVIEW_ADDR"),
	}

	if timeout := os.Getenv("XMLVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("XMLVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized XMLVIEW_* variables.
// Helps catch typos like XMLVIEW_OUTPUTDIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides file values with the variables that are set.
// Flags are merged afterwards, giving flags > env > file > defaults.
// Workers has no config key and is resolved by the export command.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Preview.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.OutputDir != "" {
		cfg.Export.OutputDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Export.Page.Size = env.PageSize
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}
