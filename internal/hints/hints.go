// Package hints builds the one-line remedies appended to CLI error messages.
// Every hint has the form "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/cdileep23/go-xmlview/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the rod environment variables that usually fix
// a headless Chrome that will not start.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout is appended to PDF export deadline errors.
func ForTimeout() string {
	return format("for records with many pages, use --timeout flag")
}

// ForConfigNotFound suggests --config, or the first per-user config path
// that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-xmlview") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory is appended to failures writing an export.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist. It returns "" when there
// is nothing to list.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForClipboard names the helper programs the clipboard writer looks for.
func ForClipboard() string {
	return format("install pbcopy (macOS), wl-copy, xclip or xsel, or use --output")
}

// ForMalformedXML points at the view that still works on unbalanced input.
func ForMalformedXML() string {
	return format("the code view still renders; run 'xmlview format' to inspect the tags")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
