package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/config"
	"github.com/cdileep23/go-xmlview/internal/docview"
	"github.com/cdileep23/go-xmlview/internal/pipeline"
	"github.com/cdileep23/go-xmlview/internal/preview"
)

// Color modes of the highlight command.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// Output formats of the render command.
const (
	renderMarkdown = "markdown"
	renderJSON     = "json"
	renderHTML     = "html"
)

// viewRun is what every view command needs: flags, resolved config, the
// viewer, and the opened record.
type viewRun struct {
	flags  *cliFlags
	cfg    *config.Config
	viewer *xmlview.Viewer
	views  *xmlview.Views
}

// openViews parses flags, resolves config, reads the input and opens it.
// The caller must Close the viewer.
func openViews(cmd string, args []string, env *Environment) (*viewRun, error) {
	f, rest, err := parseFlags(cmd, args, env)
	if err != nil {
		return nil, err
	}
	cfg, err := resolveConfig(f)
	if err != nil {
		return nil, err
	}
	rec, err := readRecord(rest, f.input.json, env)
	if err != nil {
		return nil, err
	}
	v, err := newViewer(cfg)
	if err != nil {
		return nil, err
	}
	return &viewRun{flags: f, cfg: cfg, viewer: v, views: v.Open(rec)}, nil
}

func (r *viewRun) close() {
	_ = r.viewer.Close()
}

// requireXML rejects records with nothing to show.
func (r *viewRun) requireXML() error {
	if r.views.Empty() {
		return xmlview.ErrMissingXMLContent
	}
	return nil
}

// status prints a progress line unless --quiet.
func (r *viewRun) status(env *Environment, format string, args ...any) {
	if !r.flags.common.quiet {
		fmt.Fprintf(env.Stdout, format+"\n", args...)
	}
}

// runFormat writes the pretty-printed XML.
func runFormat(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("format", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.requireXML(); err != nil {
		return err
	}
	return writeOutput(r.flags.output, []byte(r.views.Formatted), env)
}

// runHighlight writes the code view for a terminal, or as HTML.
func runHighlight(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("highlight", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.requireXML(); err != nil {
		return err
	}

	spans := r.views.Code
	if r.flags.code.raw {
		spans = r.views.Raw
	}

	var buf bytes.Buffer
	if r.flags.code.html {
		if err := writeHighlightHTML(&buf, spans, r.cfg); err != nil {
			return err
		}
		return writeOutput(r.flags.output, buf.Bytes(), env)
	}

	color, err := useColor(r.flags.code.color, r.flags.output, env)
	if err != nil {
		return err
	}
	if err := r.viewer.WriteCode(&buf, spans, color); err != nil {
		return err
	}
	return writeOutput(r.flags.output, buf.Bytes(), env)
}

// writeHighlightHTML writes a chroma <pre> block preceded by its stylesheet.
func writeHighlightHTML(buf *bytes.Buffer, spans []xmlview.Span, cfg *config.Config) error {
	buf.WriteString("<style>\n")
	if err := pipeline.WriteChromaCSS(buf, cfg.Highlight.Style); err != nil {
		return err
	}
	buf.WriteString("</style>\n")
	return pipeline.WriteChromaHTML(buf, spans, cfg.Highlight.Style, cfg.Highlight.LineNumbers)
}

// useColor resolves --color. Auto colors only a terminal stdout.
func useColor(mode, output string, env *Environment) (bool, error) {
	switch mode {
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	case colorAuto, "":
		toStdout := output == "" || output == stdinArg
		return toStdout && env.IsTerminal != nil && env.IsTerminal(), nil
	}
	return false, fmt.Errorf("%w: --color %q (want auto, always or never)", ErrInvalidFlagValue, mode)
}

// runTree writes the structure outline, or the element tree as JSON.
func runTree(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("tree", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.requireXML(); err != nil {
		return err
	}
	if r.views.TreeErr != nil {
		return fmt.Errorf("building tree: %w", r.views.TreeErr)
	}

	if r.flags.tree.json {
		data, err := json.MarshalIndent(r.views.Tree, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding tree: %w", err)
		}
		return writeOutput(r.flags.output, append(data, '\n'), env)
	}

	var buf bytes.Buffer
	if err := r.viewer.WriteTree(&buf, r.views, expansion(r.cfg)); err != nil {
		return err
	}
	return writeOutput(r.flags.output, buf.Bytes(), env)
}

// runRender writes the document view as Markdown, JSON or an HTML fragment.
func runRender(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("render", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.requireXML(); err != nil {
		return err
	}
	vs := r.views

	switch r.flags.render.as {
	case renderMarkdown:
		md, err := r.viewer.PrintMarkdown(vs)
		if err != nil {
			return err
		}
		return writeOutput(r.flags.output, []byte(md), env)
	case renderJSON, renderHTML:
	default:
		return fmt.Errorf("%w: --as %q (want markdown, json or html)", ErrInvalidFlagValue, r.flags.render.as)
	}

	if vs.DocumentErr != nil {
		return fmt.Errorf("%w: %w", xmlview.ErrNoDocument, vs.DocumentErr)
	}

	var buf bytes.Buffer
	if r.flags.render.as == renderJSON {
		data, err := json.MarshalIndent(vs.Document, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		buf.Write(append(data, '\n'))
	} else if err := docview.HTML(vs.Document).Render(&buf); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return writeOutput(r.flags.output, buf.Bytes(), env)
}

// runPreview writes the standalone HTML page with every view. Empty and
// malformed records still produce a page, with the affected views
// replaced by a notice.
func runPreview(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("preview", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	page, err := r.viewer.PreviewHTML(r.views, expansion(r.cfg))
	if err != nil {
		return err
	}

	out := r.flags.output
	if out == "" {
		out = defaultOutputPath(r.cfg.Export.OutputDir, r.views.Record.BaseName()+".html")
	}
	if err := writeOutput(out, page, env); err != nil {
		return err
	}
	if out != stdinArg {
		r.status(env, "Created %s", out)
	}
	if r.views.TreeErr != nil && r.flags.common.verbose {
		fmt.Fprintf(env.Stderr, "warning: structure views unavailable: %v\n", r.views.TreeErr)
	}
	return nil
}

// runDownload saves the record's XML exactly as received.
func runDownload(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("download", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	var buf bytes.Buffer
	name, err := xmlview.Download(&buf, r.views.Record)
	if err != nil {
		return err
	}

	out := r.flags.output
	if out == "" {
		out = defaultOutputPath(r.cfg.Export.OutputDir, name)
	}
	if err := writeOutput(out, buf.Bytes(), env); err != nil {
		return err
	}
	if out != stdinArg {
		r.status(env, "Saved %s (%s)", out, preview.FileSize(buf.Len()))
	}
	return nil
}

// runCopy puts the record's XML on the system clipboard.
func runCopy(_ context.Context, args []string, env *Environment) error {
	r, err := openViews("copy", args, env)
	if err != nil {
		return err
	}
	defer r.close()

	if err := xmlview.CopyToClipboard(env.Clipboard, r.views.Record); err != nil {
		return err
	}
	r.status(env, "Copied %s of XML to the clipboard", preview.FileSize(len(r.views.Record.XMLContent)))
	return nil
}
