package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() does not validate: %v", err)
	}
	if cfg.Format.Indent != DefaultIndent {
		t.Errorf("Format.Indent = %d, want %d", cfg.Format.Indent, DefaultIndent)
	}
	if cfg.Preview.Style != "default" {
		t.Errorf("Preview.Style = %q, want default", cfg.Preview.Style)
	}
	if cfg.Export.Page.Size != "letter" {
		t.Errorf("Export.Page.Size = %q, want letter", cfg.Export.Page.Size)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		field   string
	}{
		{name: "zero config is valid", mutate: func(c *Config) { *c = Config{} }},
		{name: "indent zero", mutate: func(c *Config) { c.Format.Indent = 0 }},
		{name: "indent negative", mutate: func(c *Config) { c.Format.Indent = -1 }, wantErr: ErrOutOfRange, field: "format.indent"},
		{name: "indent too large", mutate: func(c *Config) { c.Format.Indent = 9 }, wantErr: ErrOutOfRange, field: "format.indent"},
		{name: "highlight style too long", mutate: func(c *Config) { c.Highlight.Style = strings.Repeat("x", MaxStyleLength+1) }, wantErr: ErrFieldTooLong, field: "highlight.style"},
		{name: "tree depth too large", mutate: func(c *Config) { c.Tree.MaxDepth = MaxTreeDepth + 1 }, wantErr: ErrOutOfRange, field: "tree.maxDepth"},
		{name: "too many expand names", mutate: func(c *Config) { c.Tree.Expand = make([]string, MaxExpandNames+1) }, wantErr: ErrOutOfRange, field: "tree.expand"},
		{name: "expand name too long", mutate: func(c *Config) { c.Tree.Expand = []string{strings.Repeat("a", MaxNameLength+1)} }, wantErr: ErrFieldTooLong, field: "tree.expand[0]"},
		{name: "date preset", mutate: func(c *Config) { c.Preview.DateFormat = "long" }},
		{name: "date tokens", mutate: func(c *Config) { c.Preview.DateFormat = "YYYY-MM-DD HH:mm" }},
		{name: "page size case-insensitive", mutate: func(c *Config) { c.Export.Page.Size = "A4" }},
		{name: "unknown page size", mutate: func(c *Config) { c.Export.Page.Size = "tabloid" }, wantErr: ErrInvalidValue, field: "export.page.size"},
		{name: "unknown orientation", mutate: func(c *Config) { c.Export.Page.Orientation = "diagonal" }, wantErr: ErrInvalidValue, field: "export.page.orientation"},
		{name: "margin too small", mutate: func(c *Config) { c.Export.Page.Margin = 0.1 }, wantErr: ErrOutOfRange, field: "export.page.margin"},
		{name: "margin too large", mutate: func(c *Config) { c.Export.Page.Margin = 3.5 }, wantErr: ErrOutOfRange, field: "export.page.margin"},
		{name: "unparsable timeout", mutate: func(c *Config) { c.Export.Timeout = "soon" }, wantErr: ErrInvalidValue, field: "export.timeout"},
		{name: "negative timeout", mutate: func(c *Config) { c.Export.Timeout = "-5s" }, wantErr: ErrOutOfRange, field: "export.timeout"},
		{name: "timeout too long", mutate: func(c *Config) { c.Export.Timeout = "1h" }, wantErr: ErrOutOfRange, field: "export.timeout"},
		{name: "negative body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = -1 }, wantErr: ErrOutOfRange, field: "server.maxBodyBytes"},
		{name: "addr too long", mutate: func(c *Config) { c.Server.Addr = strings.Repeat("h", MaxAddrLength+1) }, wantErr: ErrFieldTooLong, field: "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestConfig_Validate_DateFormat(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Preview.DateFormat = "YYYY [at"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "preview.dateFormat") {
		t.Errorf("error = %v, want preview.dateFormat error", err)
	}
}

func TestExportConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{timeout: "", want: 0},
		{timeout: "45s", want: 45 * time.Second},
		{timeout: "2m", want: 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			t.Parallel()

			got, err := ExportConfig{Timeout: tt.timeout}.TimeoutDuration()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "xmlview.yaml", `format:
  indent: 4
highlight:
  style: "dracula"
  lineNumbers: true
tree:
  maxDepth: 64
  expand: ["document", "page"]
preview:
  style: "dark"
  dateFormat: "iso"
  assetsDir: "/srv/styles"
export:
  page:
    size: "a4"
    orientation: "landscape"
    margin: 1.0
  timeout: "90s"
  appendSource: true
  outputDir: "out"
server:
  addr: ":9090"
  maxBodyBytes: 2048
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Format.Indent != 4 {
			t.Errorf("Format.Indent = %d, want 4", cfg.Format.Indent)
		}
		if cfg.Highlight.Style != "dracula" || !cfg.Highlight.LineNumbers {
			t.Errorf("Highlight = %+v", cfg.Highlight)
		}
		if cfg.Tree.MaxDepth != 64 || len(cfg.Tree.Expand) != 2 || cfg.Tree.Expand[1] != "page" {
			t.Errorf("Tree = %+v", cfg.Tree)
		}
		if cfg.Preview.Style != "dark" || cfg.Preview.DateFormat != "iso" || cfg.Preview.AssetsDir != "/srv/styles" {
			t.Errorf("Preview = %+v", cfg.Preview)
		}
		if cfg.Export.Page.Size != "a4" || cfg.Export.Page.Orientation != "landscape" || cfg.Export.Page.Margin != 1.0 {
			t.Errorf("Export.Page = %+v", cfg.Export.Page)
		}
		if d, _ := cfg.Export.TimeoutDuration(); d != 90*time.Second {
			t.Errorf("timeout = %v, want 90s", d)
		}
		if !cfg.Export.AppendSource || cfg.Export.OutputDir != "out" {
			t.Errorf("Export = %+v", cfg.Export)
		}
		if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodyBytes != 2048 {
			t.Errorf("Server = %+v", cfg.Server)
		}
	})

	t.Run("absent sections keep defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "partial.yaml", "format:\n  indent: 3\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Format.Indent != 3 {
			t.Errorf("Format.Indent = %d, want 3", cfg.Format.Indent)
		}
		if cfg.Server.Addr != DefaultAddr {
			t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
		}
		if cfg.Preview.Style != "default" {
			t.Errorf("Preview.Style = %q, want default", cfg.Preview.Style)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig("/nonexistent/path/xmlview.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound listing paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-xmlview-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-xmlview-config.yml") {
			t.Errorf("error %q does not list searched paths", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "invalid.yaml", "format: [unclosed")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "unknown.yaml", "format:\n  tabs: true\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "bad.yaml", "format:\n  indent: 12\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("error = %v, want ErrOutOfRange", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 || paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Fatalf("SearchPaths() = %v, want local paths first", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q not under %s", p, AppName)
		}
	}
}

func TestMarshal_LoadsBack(t *testing.T) {
	t.Parallel()

	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := writeConfig(t, "init.yaml", string(data))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(marshaled defaults) error = %v", err)
	}
	if cfg.Export.Timeout != DefaultTimeout || cfg.Format.Indent != DefaultIndent {
		t.Errorf("loaded %+v", cfg)
	}
}
