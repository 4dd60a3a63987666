package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags controls how the input argument is read.
type inputFlags struct {
	json bool // input is an API record, not bare XML
}

// formatFlags holds pretty-printer flags.
type formatFlags struct {
	indent int
}

// highlightFlags holds chroma flags.
type highlightFlags struct {
	style       string
	lineNumbers bool
}

// codeFlags holds flags of the highlight command only.
type codeFlags struct {
	color string // auto, always, never
	raw   bool   // highlight the source as written
	html  bool
}

// treeFlags holds structure view flags.
type treeFlags struct {
	maxDepth  int
	expand    []string
	expandAll bool
	json      bool
}

// renderFlags holds document view flags.
type renderFlags struct {
	as     string // markdown, json, html
	source bool
}

// previewFlags holds preview page flags.
type previewFlags struct {
	style      string
	assetPath  string
	dateFormat string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// exportFlags holds PDF export flags.
type exportFlags struct {
	workers int
	timeout string
	source  bool
}

// serveFlags holds preview server flags.
type serveFlags struct {
	addr         string
	maxBodyBytes int64
	noPDF        bool
}

// cliFlags holds the flags of one command. Only the groups registered for
// that command are populated.
type cliFlags struct {
	common    commonFlags
	input     inputFlags
	output    string
	force     bool
	format    formatFlags
	highlight highlightFlags
	code      codeFlags
	tree      treeFlags
	render    renderFlags
	preview   previewFlags
	page      pageFlags
	export    exportFlags
	serve     serveFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.BoolVar(&f.json, "json", false, "read input as a JSON record (implied for .json files)")
}

func addOutputFlag(fs *flag.FlagSet, target *string, usage string) {
	fs.StringVarP(target, "output", "o", "", usage)
}

func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.IntVar(&f.indent, "indent", 0, "spaces per indentation level (0-8)")
}

func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "chroma style name, e.g. monokai, github")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "number lines in HTML output")
}

func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.StringVar(&f.color, "color", "auto", "terminal colors: auto, always, never")
	fs.BoolVar(&f.raw, "raw", false, "highlight the XML as written, unformatted")
	fs.BoolVar(&f.html, "html", false, "write a styled HTML block instead of terminal text")
}

func addTreeFlags(fs *flag.FlagSet, f *treeFlags) {
	fs.IntVar(&f.maxDepth, "max-depth", 0, "deepest element shown (1-4096)")
	fs.StringSliceVarP(&f.expand, "expand", "e", nil, "element names to open (repeatable)")
	fs.BoolVarP(&f.expandAll, "expand-all", "a", false, "open every element")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.as, "as", "markdown", "output format: markdown, json, html")
	fs.BoolVar(&f.source, "source", false, "append the formatted XML to the document")
}

func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.StringVar(&f.style, "style", "", "preview stylesheet name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory of stylesheets overriding the embedded ones")
	fs.StringVar(&f.dateFormat, "date-format", "", "created-at format or preset: iso, european, us, long")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout per record (e.g., 30s, 2m)")
	fs.BoolVar(&f.source, "source", false, "append the formatted XML to the document")
}

func addServeFlags(fs *flag.FlagSet, f *serveFlags) {
	fs.StringVar(&f.addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	fs.Int64Var(&f.maxBodyBytes, "max-body", 0, "largest accepted request body in bytes")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "disable the PDF export endpoint")
}

// newFlagSet registers the flag groups of cmd.
func newFlagSet(cmd string, f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)

	switch cmd {
	case "format":
		addInputFlags(fs, &f.input)
		addOutputFlag(fs, &f.output, "output file (default stdout)")
		addFormatFlags(fs, &f.format)
	case "highlight":
		addInputFlags(fs, &f.input)
		addOutputFlag(fs, &f.output, "output file (default stdout)")
		addFormatFlags(fs, &f.format)
		addHighlightFlags(fs, &f.highlight)
		addCodeFlags(fs, &f.code)
	case "tree":
		addInputFlags(fs, &f.input)
		addOutputFlag(fs, &f.output, "output file (default stdout)")
		addTreeFlags(fs, &f.tree)
		fs.BoolVar(&f.tree.json, "tree-json", false, "write the element tree as JSON")
	case "render":
		addInputFlags(fs, &f.input)
		addOutputFlag(fs, &f.output, "output file (default stdout)")
		addFormatFlags(fs, &f.format)
		addRenderFlags(fs, &f.render)
	case "preview":
		addInputFlags(fs, &f.input)
		addOutputFlag(fs, &f.output, "output file, - for stdout (default <name>.html)")
		addFormatFlags(fs, &f.format)
		addHighlightFlags(fs, &f.highlight)
		addTreeFlags(fs, &f.tree)
		addPreviewFlags(fs, &f.preview)
	case "download":
		addInputFlags(fs, &f.input)
		addOutputFlag(fs, &f.output, "output file, - for stdout (default <name>.xml)")
	case "copy":
		addInputFlags(fs, &f.input)
	case "export":
		addOutputFlag(fs, &f.output, "output directory, or .pdf file for a single input")
		addFormatFlags(fs, &f.format)
		addHighlightFlags(fs, &f.highlight)
		addPageFlags(fs, &f.page)
		addExportFlags(fs, &f.export)
	case "serve":
		addFormatFlags(fs, &f.format)
		addHighlightFlags(fs, &f.highlight)
		addTreeFlags(fs, &f.tree)
		addPreviewFlags(fs, &f.preview)
		addPageFlags(fs, &f.page)
		addExportFlags(fs, &f.export)
		addServeFlags(fs, &f.serve)
	case "config":
		fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	}
	return fs
}

// parseFlags parses the flags of cmd and returns the positional arguments.
// Parse errors are reported with the command's usage.
func parseFlags(cmd string, args []string, env *Environment) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(cmd, f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printCommandUsage(env.Stderr, cmd) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlagValue, err)
	}
	f.changed = fs.Changed
	return f, fs.Args(), nil
}
