package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/assets"
	"github.com/cdileep23/go-xmlview/internal/config"
	"github.com/cdileep23/go-xmlview/internal/hints"
)

// Exit codes for the xmlview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful run
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or input record
	ExitIO        = 3 // File not found, permission denied, clipboard
	ExitBrowser   = 4 // Browser/Chrome errors
	ExitMalformed = 5 // XML too broken for the structural views
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrInvalidFlagValue   = errors.New("invalid flag value")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownSubcommand  = errors.New("unknown subcommand")
)

// configLoadError remembers which config name failed, so that the hint
// can list where it was searched.
type configLoadError struct {
	name string
	err  error
}

func (e *configLoadError) Error() string {
	return fmt.Sprintf("loading config %q: %v", e.name, e.err)
}

func (e *configLoadError) Unwrap() error {
	return e.err
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, xmlview.ErrBrowserConnect) ||
		errors.Is(err, xmlview.ErrPageCreate) ||
		errors.Is(err, xmlview.ErrPageLoad) ||
		errors.Is(err, xmlview.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Malformed XML (exit 5)
	if xmlview.IsStructural(err) || errors.Is(err, xmlview.ErrNoDocument) {
		return ExitMalformed
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, xmlview.ErrClipboardUnavailable) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrOutOfRange) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, xmlview.ErrMissingXMLContent) ||
		errors.Is(err, xmlview.ErrInvalidRecord) ||
		errors.Is(err, xmlview.ErrInvalidPageSize) ||
		errors.Is(err, xmlview.ErrInvalidOrientation) ||
		errors.Is(err, xmlview.ErrInvalidMargin) ||
		errors.Is(err, xmlview.ErrStyleNotFound) ||
		errors.Is(err, xmlview.ErrHighlightStyle) ||
		errors.Is(err, xmlview.ErrInvalidAssetPath) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidFlagValue) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, ErrUnknownSubcommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns the remedy to print after err, or "". Batch failures
// were already hinted per file.
func hintFor(err error) string {
	var cfgErr *configLoadError
	var batchErr *batchError
	switch {
	case errors.As(err, &batchErr):
		return ""
	case errors.Is(err, xmlview.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound) && errors.As(err, &cfgErr):
		return hints.ForConfigNotFound(config.SearchPaths(cfgErr.name))
	case errors.Is(err, xmlview.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, xmlview.ErrClipboardUnavailable):
		return hints.ForClipboard()
	case xmlview.IsStructural(err):
		return hints.ForMalformedXML()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
