package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xmlview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "View commands (input: file.xml, record.json, or - for stdin):")
	fmt.Fprintln(w, "  format      Pretty-print XML")
	fmt.Fprintln(w, "  highlight   Syntax-highlight XML for the terminal or HTML")
	fmt.Fprintln(w, "  tree        Show the element structure as an outline")
	fmt.Fprintln(w, "  render      Render the page/section document view")
	fmt.Fprintln(w, "  preview     Write a standalone HTML page with every view")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actions:")
	fmt.Fprintln(w, "  download    Save the original XML as <name>.xml")
	fmt.Fprintln(w, "  copy        Copy the original XML to the clipboard")
	fmt.Fprintln(w, "  export      Print records to PDF")
	fmt.Fprintln(w, "  serve       Run the HTTP preview server")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  config      Create, show or locate configuration files")
	fmt.Fprintln(w, "  doctor      Check the system for PDF export")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'xmlview help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
}

func printInputUsage(w io.Writer) {
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --json                Read input as a JSON record (implied for .json)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
}

func printTreeUsage(w io.Writer) {
	fmt.Fprintln(w, "Tree:")
	fmt.Fprintln(w, "      --max-depth <n>       Deepest element shown (1-4096)")
	fmt.Fprintln(w, "  -e, --expand <name>       Open elements with this name (repeatable)")
	fmt.Fprintln(w, "  -a, --expand-all          Open every element")
}

func printHighlightUsage(w io.Writer) {
	fmt.Fprintln(w, "Highlight:")
	fmt.Fprintln(w, "      --indent <n>          Spaces per level (0-8)")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style, e.g. monokai, github, dracula")
	fmt.Fprintln(w, "      --line-numbers        Number lines in HTML output")
}

func printPageUsage(w io.Writer) {
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
}

// printCommandUsage prints usage for one command.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case "format":
		fmt.Fprintln(w, "Usage: xmlview format <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Pretty-print XML, one tag per line. Malformed input is formatted best-effort.")
		fmt.Fprintln(w)
		printInputUsage(w)
		fmt.Fprintln(w, "      --indent <n>          Spaces per level (0-8)")
	case "highlight":
		fmt.Fprintln(w, "Usage: xmlview highlight <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Syntax-highlight the formatted XML.")
		fmt.Fprintln(w)
		printInputUsage(w)
		fmt.Fprintln(w)
		printHighlightUsage(w)
		fmt.Fprintln(w, "      --color <mode>        auto, always, never")
		fmt.Fprintln(w, "      --raw                 Highlight the XML as written")
		fmt.Fprintln(w, "      --html                Write a styled HTML block")
	case "tree":
		fmt.Fprintln(w, "Usage: xmlview tree <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show the element structure. Elements start collapsed unless expanded")
		fmt.Fprintln(w, "by name, with --expand-all, or in the config file (tree.expand).")
		fmt.Fprintln(w)
		printInputUsage(w)
		fmt.Fprintln(w)
		printTreeUsage(w)
		fmt.Fprintln(w, "      --tree-json           Write the element tree as JSON")
	case "render":
		fmt.Fprintln(w, "Usage: xmlview render <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render <document><page><section> XML as a document.")
		fmt.Fprintln(w)
		printInputUsage(w)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render:")
		fmt.Fprintln(w, "      --as <format>         markdown (default), json, html")
		fmt.Fprintln(w, "      --source              Append the formatted XML (markdown only)")
		fmt.Fprintln(w, "      --indent <n>          Spaces per level of the appended XML")
	case "preview":
		fmt.Fprintln(w, "Usage: xmlview preview <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Write a standalone HTML page with the formatted, source, tree and")
		fmt.Fprintln(w, "document views. Defaults to <name>.html in export.outputDir.")
		fmt.Fprintln(w)
		printInputUsage(w)
		fmt.Fprintln(w)
		printHighlightUsage(w)
		fmt.Fprintln(w)
		printTreeUsage(w)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Page style:")
		fmt.Fprintln(w, "      --style <name>        Preview stylesheet")
		fmt.Fprintln(w, "      --asset-path <dir>    Stylesheets overriding the embedded ones")
		fmt.Fprintln(w, "      --date-format <s>     Created-at format: iso, european, us, long,")
		fmt.Fprintln(w, "                            or tokens YYYY MM DD; [text] escapes literals")
	case "download":
		fmt.Fprintln(w, "Usage: xmlview download <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Save the XML exactly as received, named after the record's original")
		fmt.Fprintln(w, "filename with an .xml extension (document.xml when there is none).")
		fmt.Fprintln(w)
		printInputUsage(w)
	case "copy":
		fmt.Fprintln(w, "Usage: xmlview copy <input> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Copy the XML exactly as received to the system clipboard.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "      --json                Read input as a JSON record (implied for .json)")
	case "export":
		fmt.Fprintln(w, "Usage: xmlview export <input>... [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print records to PDF. Inputs are .xml files, .json records, or")
		fmt.Fprintln(w, "directories searched for both. Requires Chrome or Chromium.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -o, --output <path>       Output directory, or .pdf file for one input")
		fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = auto, max 8)")
		fmt.Fprintln(w, "  -t, --timeout <d>         Timeout per record (e.g., 30s, 2m)")
		fmt.Fprintln(w, "      --source              Append the formatted XML")
		fmt.Fprintln(w)
		printPageUsage(w)
		fmt.Fprintln(w)
		printHighlightUsage(w)
	case "serve":
		fmt.Fprintln(w, "Usage: xmlview serve [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Serve the views over HTTP under /api/v1. Logs one JSON line per request")
		fmt.Fprintln(w, "to stderr.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Server:")
		fmt.Fprintln(w, "      --addr <host:port>    Listen address (default 127.0.0.1:8080)")
		fmt.Fprintln(w, "      --max-body <bytes>    Largest accepted request body")
		fmt.Fprintln(w, "      --no-pdf              Disable /api/v1/export/pdf")
		fmt.Fprintln(w, "  -w, --workers <n>         Parallel PDF exports (0 = auto)")
		fmt.Fprintln(w, "  -t, --timeout <d>         Timeout per PDF export")
		fmt.Fprintln(w, "      --source              Append the formatted XML to printed documents")
		fmt.Fprintln(w)
		printHighlightUsage(w)
		fmt.Fprintln(w)
		printTreeUsage(w)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Page style:")
		fmt.Fprintln(w, "      --style <name>        Preview stylesheet")
		fmt.Fprintln(w, "      --asset-path <dir>    Stylesheets overriding the embedded ones")
		fmt.Fprintln(w, "      --date-format <s>     Created-at format")
		fmt.Fprintln(w)
		printPageUsage(w)
	case "config":
		fmt.Fprintln(w, "Usage: xmlview config <init|show|paths> [args] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  init [path]     Write the default config (default xmlview.yaml, - for stdout)")
		fmt.Fprintln(w, "  show            Print the effective config")
		fmt.Fprintln(w, "  paths [name]    List where a config name is searched (* = exists)")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  -f, --force     Overwrite an existing file")
	case "doctor":
		fmt.Fprintln(w, "Usage: xmlview doctor [--json]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check Chrome, sandbox settings and temp directory for PDF export.")
		return
	case "completion":
		printCompletionUsage(w)
		return
	default:
		printUsage(w)
		return
	}
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: XMLVIEW_CONFIG, XMLVIEW_STYLE, XMLVIEW_TIMEOUT, XMLVIEW_OUTPUT_DIR,")
	fmt.Fprintln(w, "XMLVIEW_PAGE_SIZE, XMLVIEW_WORKERS, XMLVIEW_ADDR. Flags override them.")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		printUsage(env.Stderr)
		return
	}
	printCommandUsage(env.Stdout, args[0])
}
