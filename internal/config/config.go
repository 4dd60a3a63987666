// Package config loads the YAML configuration shared by the CLI and the
// preview server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cdileep23/go-xmlview/internal/dateutil"
	"github.com/cdileep23/go-xmlview/internal/fileutil"
	"github.com/cdileep23/go-xmlview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidValue    = errors.New("invalid value")
)

// AppName names the per-user config directory.
const AppName = "go-xmlview"

// Field limits.
const (
	MaxIndent          = 8
	MaxTreeDepth       = 4096
	MaxStyleLength     = 64
	MaxPathLength      = 4096
	MaxFormatLength    = 100
	MaxAddrLength      = 255
	MaxExpandNames     = 256
	MaxNameLength      = 256
	MinMargin          = 0.25
	MaxMargin          = 3.0
	MaxTimeout         = 10 * time.Minute
	DefaultIndent      = 2
	DefaultTimeout     = "30s"
	DefaultAddr        = "127.0.0.1:8080"
	DefaultMaxBodySize = 10 << 20
	MaxMaxBodySize     = 100 << 20
)

// Config holds every tunable of the viewer.
type Config struct {
	Format    FormatConfig    `yaml:"format"`
	Highlight HighlightConfig `yaml:"highlight"`
	Tree      TreeConfig      `yaml:"tree"`
	Preview   PreviewConfig   `yaml:"preview"`
	Export    ExportConfig    `yaml:"export"`
	Server    ServerConfig    `yaml:"server"`
}

// FormatConfig controls the pretty-printer.
type FormatConfig struct {
	Indent int `yaml:"indent"` // spaces per level, 0-8
}

// HighlightConfig controls chroma output.
type HighlightConfig struct {
	Style       string `yaml:"style"` // chroma style name, empty = monokai
	LineNumbers bool   `yaml:"lineNumbers"`
}

// TreeConfig controls the structure view.
type TreeConfig struct {
	MaxDepth  int      `yaml:"maxDepth"` // 0 = xmltree.DefaultMaxDepth
	ExpandAll bool     `yaml:"expandAll"`
	Expand    []string `yaml:"expand"` // element names open initially
}

// PreviewConfig controls the standalone HTML page.
type PreviewConfig struct {
	Style      string `yaml:"style"`      // embedded CSS name, empty = default
	DateFormat string `yaml:"dateFormat"` // dateutil format or preset
	AssetsDir  string `yaml:"assetsDir"`  // directory overriding embedded styles
}

// ExportConfig controls PDF export.
type ExportConfig struct {
	Page         PageConfig `yaml:"page"`
	Timeout      string     `yaml:"timeout"` // Go duration, e.g. "45s"
	AppendSource bool       `yaml:"appendSource"`
	OutputDir    string     `yaml:"outputDir"` // empty = current directory
}

// PageConfig defines PDF page settings. Zero values mean defaults.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// ServerConfig controls `xmlview serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
}

// Validate checks ranges, enumerations and field lengths. LoadConfig calls
// it; callers building a Config by hand should too.
func (c *Config) Validate() error {
	if c.Format.Indent < 0 || c.Format.Indent > MaxIndent {
		return fmt.Errorf("%w: format.indent must be between 0 and %d, got %d", ErrOutOfRange, MaxIndent, c.Format.Indent)
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Tree.MaxDepth < 0 || c.Tree.MaxDepth > MaxTreeDepth {
		return fmt.Errorf("%w: tree.maxDepth must be between 1 and %d, got %d", ErrOutOfRange, MaxTreeDepth, c.Tree.MaxDepth)
	}
	if len(c.Tree.Expand) > MaxExpandNames {
		return fmt.Errorf("%w: tree.expand has %d names (max %d)", ErrOutOfRange, len(c.Tree.Expand), MaxExpandNames)
	}
	for i, name := range c.Tree.Expand {
		if err := validateFieldLength(fmt.Sprintf("tree.expand[%d]", i), name, MaxNameLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("preview.style", c.Preview.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("preview.dateFormat", c.Preview.DateFormat, MaxFormatLength); err != nil {
		return err
	}
	if c.Preview.DateFormat != "" {
		if err := dateutil.ValidateFormat(c.Preview.DateFormat); err != nil {
			return fmt.Errorf("preview.dateFormat: %w", err)
		}
	}
	if err := validateFieldLength("preview.assetsDir", c.Preview.AssetsDir, MaxPathLength); err != nil {
		return err
	}

	if err := c.Export.Page.validate(); err != nil {
		return err
	}
	if _, err := c.Export.TimeoutDuration(); err != nil {
		return err
	}
	if err := validateFieldLength("export.outputDir", c.Export.OutputDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes < 0 || c.Server.MaxBodyBytes > MaxMaxBodySize {
		return fmt.Errorf("%w: server.maxBodyBytes must be between 1 and %d, got %d", ErrOutOfRange, MaxMaxBodySize, c.Server.MaxBodyBytes)
	}

	return nil
}

func (p PageConfig) validate() error {
	switch strings.ToLower(p.Size) {
	case "", "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: export.page.size %q (must be letter, a4, or legal)", ErrInvalidValue, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: export.page.orientation %q (must be portrait or landscape)", ErrInvalidValue, p.Orientation)
	}
	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: export.page.margin must be between %.2f and %.2f, got %.2f", ErrOutOfRange, MinMargin, MaxMargin, p.Margin)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero, meaning the
// exporter's default.
func (e ExportConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: export.timeout %q: %v", ErrInvalidValue, e.Timeout, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: export.timeout must be positive and at most %s, got %s", ErrOutOfRange, MaxTimeout, d)
	}
	return d, nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Format:    FormatConfig{Indent: DefaultIndent},
		Highlight: HighlightConfig{Style: "monokai"},
		Tree:      TreeConfig{MaxDepth: 256},
		Preview:   PreviewConfig{Style: "default", DateFormat: dateutil.DefaultDateFormat},
		Export: ExportConfig{
			Page:    PageConfig{Size: "letter", Orientation: "portrait", Margin: 0.5},
			Timeout: DefaultTimeout,
		},
		Server: ServerConfig{Addr: DefaultAddr, MaxBodyBytes: DefaultMaxBodySize},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path. Anything else is a
// name searched as ./name.yaml, ./name.yml, then in the user config
// directory under go-xmlview/. Keys absent from the file keep their
// DefaultConfig values. There is no silent fallback when nothing is found.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, for `xmlview config init`.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// SearchPaths lists where LoadConfig looks for a config named name, in
// order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
