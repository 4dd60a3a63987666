package main

import (
	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/config"
)

// resolveConfig loads the config file named by --config or XMLVIEW_CONFIG,
// applies environment overrides, then the flags that were set, and
// validates the result.
func resolveConfig(f *cliFlags) (*config.Config, error) {
	ev := loadEnvConfig()

	name := f.common.config
	if name == "" {
		name = ev.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, &configLoadError{name: name, err: err}
		}
		cfg = loaded
	}

	applyEnvConfig(ev, cfg)
	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies the flags set on the command line into cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	set := f.changed
	if set == nil {
		return
	}

	if set("indent") {
		cfg.Format.Indent = f.format.indent
	}

	if set("highlight-style") {
		cfg.Highlight.Style = f.highlight.style
	}
	if set("line-numbers") {
		cfg.Highlight.LineNumbers = f.highlight.lineNumbers
	}

	if set("max-depth") {
		cfg.Tree.MaxDepth = f.tree.maxDepth
	}
	if set("expand") {
		cfg.Tree.Expand = f.tree.expand
	}
	if set("expand-all") {
		cfg.Tree.ExpandAll = f.tree.expandAll
	}

	if set("style") {
		cfg.Preview.Style = f.preview.style
	}
	if set("asset-path") {
		cfg.Preview.AssetsDir = f.preview.assetPath
	}
	if set("date-format") {
		cfg.Preview.DateFormat = f.preview.dateFormat
	}

	if set("page-size") {
		cfg.Export.Page.Size = f.page.size
	}
	if set("orientation") {
		cfg.Export.Page.Orientation = f.page.orientation
	}
	if set("margin") {
		cfg.Export.Page.Margin = f.page.margin
	}
	if set("timeout") {
		cfg.Export.Timeout = f.export.timeout
	}
	// --source belongs to render and export; both feed the print pipeline.
	if set("source") {
		cfg.Export.AppendSource = f.render.source || f.export.source
	}

	if set("addr") {
		cfg.Server.Addr = f.serve.addr
	}
	if set("max-body") {
		cfg.Server.MaxBodyBytes = f.serve.maxBodyBytes
	}
}

// viewerOptions translates cfg into Viewer options.
func viewerOptions(cfg *config.Config) ([]xmlview.Option, error) {
	page := xmlview.DefaultPageSettings()
	if cfg.Export.Page.Size != "" {
		page.Size = cfg.Export.Page.Size
	}
	if cfg.Export.Page.Orientation != "" {
		page.Orientation = cfg.Export.Page.Orientation
	}
	if cfg.Export.Page.Margin > 0 {
		page.Margin = cfg.Export.Page.Margin
	}

	opts := []xmlview.Option{
		xmlview.WithIndent(cfg.Format.Indent),
		xmlview.WithMaxDepth(cfg.Tree.MaxDepth),
		xmlview.WithHighlightStyle(cfg.Highlight.Style),
		xmlview.WithLineNumbers(cfg.Highlight.LineNumbers),
		xmlview.WithStyle(cfg.Preview.Style),
		xmlview.WithAssetPath(cfg.Preview.AssetsDir),
		xmlview.WithDateFormat(cfg.Preview.DateFormat),
		xmlview.WithPage(page),
		xmlview.WithAppendSource(cfg.Export.AppendSource),
	}

	timeout, err := cfg.Export.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, xmlview.WithTimeout(timeout))
	}
	return opts, nil
}

// newViewer builds a Viewer from cfg. The browser is only started by an
// export, so commands that never export pay nothing for it.
func newViewer(cfg *config.Config) (*xmlview.Viewer, error) {
	opts, err := viewerOptions(cfg)
	if err != nil {
		return nil, err
	}
	return xmlview.NewViewer(opts...)
}

// expansion returns the initial tree state configured in cfg.
func expansion(cfg *config.Config) *xmlview.Expansion {
	exp := xmlview.NewExpansion(cfg.Tree.Expand...)
	if cfg.Tree.ExpandAll {
		exp.ExpandAll(true)
	}
	return exp
}
