package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/cdileep23/go-xmlview/internal/assets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // glob for file arguments, empty when none
}

// completionMeta holds completion-specific metadata for flags. Flag names,
// types and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"page-size":       {Values: []string{"letter", "a4", "legal"}},
	"orientation":     {Values: []string{"portrait", "landscape"}},
	"color":           {Values: []string{"auto", "always", "never"}},
	"as":              {Values: []string{"markdown", "json", "html"}},
	"style":           {Values: assets.StyleNames()},
	"highlight-style": {Values: []string{"monokai", "github", "dracula", "solarized-dark", "solarized-light", "nord", "vs"}},
	"date-format":     {Values: []string{"iso", "european", "us", "long", "datetime"}},

	"config": {FileGlob: "*.yaml,*.yml"},

	"asset-path": {IsDir: true},
}

// commandDescriptions is shown by shells that display descriptions.
var commandDescriptions = map[string]string{
	"format":     "Pretty-print XML",
	"highlight":  "Syntax-highlight XML",
	"tree":       "Show the element structure",
	"render":     "Render the document view",
	"preview":    "Write a standalone HTML preview",
	"download":   "Save the original XML",
	"copy":       "Copy the original XML to the clipboard",
	"export":     "Print records to PDF",
	"serve":      "Run the HTTP preview server",
	"config":     "Create, show or locate configuration files",
	"doctor":     "Check the system for PDF export",
	"completion": "Generate shell completion script",
	"version":    "Show version information",
	"help":       "Show help for a command",
}

// commandFilePatterns lists the input files each command accepts.
var commandFilePatterns = map[string]string{
	"format":    "*.xml,*.json",
	"highlight": "*.xml,*.json",
	"tree":      "*.xml,*.json",
	"render":    "*.xml,*.json",
	"preview":   "*.xml,*.json",
	"download":  "*.xml,*.json",
	"copy":      "*.xml,*.json",
	"export":    "*.xml,*.json",
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion. Flags come from
// the same FlagSets the commands parse with.
func getCommands() []commandDef {
	cmds := make([]commandDef, 0, len(commandNames))
	for _, name := range commandNames {
		def := commandDef{
			Name:        name,
			Desc:        commandDescriptions[name],
			FilePattern: commandFilePatterns[name],
		}
		if hasFlagSet(name) {
			def.Flags = extractFlagsFromFlagSet(newFlagSet(name, &cliFlags{}))
		}
		cmds = append(cmds, def)
	}
	return cmds
}

// hasFlagSet reports whether name parses flags with newFlagSet.
func hasFlagSet(name string) bool {
	switch name {
	case "doctor", "completion", "version", "help":
		return false
	}
	return true
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	bw := bufio.NewWriter(w)
	switch shell {
	case ShellBash:
		generateBash(bw, getCommands())
	case ShellZsh:
		generateZsh(bw, getCommands())
	case ShellFish:
		generateFish(bw, getCommands())
	case ShellPowerShell:
		generatePowerShell(bw, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	return bw.Flush()
}

// flagWords lists every spelling of the flags, for word-list completion.
func flagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func commandWords(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// globExtensions turns "*.xml,*.json" into ["xml", "json"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// valueFlags collects enum, file and directory flags across commands,
// keyed by long name. Values of the same flag agree across commands.
func valueFlags(cmds []commandDef) []flagDef {
	seen := map[string]flagDef{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type == flagEnum || f.Type == flagFile || f.Type == flagDir {
				seen[f.Long] = f
			}
		}
	}
	out := make([]flagDef, 0, len(seen))
	for _, f := range seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Long < out[j].Long })
	return out
}

func generateBash(w *bufio.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# bash completion for xmlview")
	fmt.Fprintln(w, "_xmlview() {")
	fmt.Fprintln(w, "    local cur prev cmd")
	fmt.Fprintln(w, "    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	fmt.Fprintln(w, "    cmd=\"${COMP_WORDS[1]}\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandWords(cmds))
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$prev\" in")
	for _, f := range valueFlags(cmds) {
		names := "--" + f.Long
		if f.Short != "" {
			names += "|-" + f.Short
		}
		fmt.Fprintf(w, "        %s)\n", names)
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(w, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
		case flagDir:
			fmt.Fprintln(w, "            COMPREPLY=($(compgen -d -- \"$cur\"))")
		case flagFile:
			fmt.Fprintln(w, "            COMPREPLY=($(compgen -f -- \"$cur\"))")
		}
		fmt.Fprintln(w, "            return ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$cmd\" in")
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		switch c.Name {
		case "help":
			fmt.Fprintf(w, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandWords(cmds))
		case "completion":
			fmt.Fprintln(w, "            COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"$cur\"))")
		default:
			fmt.Fprintln(w, "            if [[ \"$cur\" == -* ]]; then")
			fmt.Fprintf(w, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			if c.FilePattern != "" {
				fmt.Fprintln(w, "            else")
				fmt.Fprintln(w, "                COMPREPLY=($(compgen -f -- \"$cur\"))")
			}
			fmt.Fprintln(w, "            fi")
		}
		fmt.Fprintln(w, "            ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _xmlview xmlview")
}

// zshEscape escapes text for a zsh _arguments entry.
var zshEscape = strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)

func generateZsh(w *bufio.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "#compdef xmlview")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_xmlview() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshEscape.Replace(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"${words[2]}\" in")
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		switch c.Name {
		case "help":
			fmt.Fprintln(w, "            _describe 'command' commands ;;")
			continue
		case "completion":
			fmt.Fprintln(w, "            _values 'shell' bash zsh fish powershell ;;")
			continue
		}
		fmt.Fprintln(w, "            _arguments \\")
		for _, f := range c.Flags {
			fmt.Fprintf(w, "                '%s' \\\n", zshFlagArg(f))
		}
		if c.FilePattern != "" {
			fmt.Fprintf(w, "                '*:file:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		} else {
			fmt.Fprintln(w, "                ''")
		}
		fmt.Fprintln(w, "            ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_xmlview \"$@\"")
}

func zshFlagArg(f flagDef) string {
	names := "--" + f.Long
	if f.Short != "" {
		names = "(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'"
	}
	arg := names + "[" + zshEscape.Replace(f.Desc) + "]"
	switch f.Type {
	case flagBool:
		return arg
	case flagEnum:
		return arg + ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return arg + ":file:_files -g \"*.(" + strings.Join(globExtensions(f.FileGlob), "|") + ")\""
	case flagDir:
		return arg + ":directory:_files -/"
	}
	return arg + ":" + f.Long + ":"
}

func generateFish(w *bufio.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# fish completion for xmlview")
	fmt.Fprintln(w, "complete -c xmlview -f")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c xmlview -n __fish_use_subcommand -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	fmt.Fprintf(w, "complete -c xmlview -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'\n")
	fmt.Fprintf(w, "complete -c xmlview -n '__fish_seen_subcommand_from help' -a %s\n", fishQuote(commandWords(cmds)))

	for _, c := range cmds {
		cond := "'__fish_seen_subcommand_from " + c.Name + "'"
		if c.FilePattern != "" {
			fmt.Fprintf(w, "complete -c xmlview -n %s -F\n", cond)
		}
		for _, f := range c.Flags {
			line := "complete -c xmlview -n " + cond + " -l " + f.Long
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile, flagDir:
				line += " -r -F"
			default:
				line += " -x"
			}
			fmt.Fprintln(w, line+" -d "+fishQuote(f.Desc))
		}
	}
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`) + "'"
}

func generatePowerShell(w *bufio.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# PowerShell completion for xmlview")
	fmt.Fprintln(w, "Register-ArgumentCompleter -Native -CommandName xmlview -ScriptBlock {")
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w, "    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }")
	fmt.Fprintln(w, "    $flags = @{")
	for _, c := range cmds {
		quoted := make([]string, 0, len(c.Flags))
		for _, word := range flagWords(c.Flags) {
			quoted = append(quoted, "'"+word+"'")
		}
		fmt.Fprintf(w, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {")
	fmt.Fprintf(w, "        $candidates = '%s' -split ' '\n", commandWords(cmds))
	fmt.Fprintln(w, "    } elseif ($words[1] -eq 'completion') {")
	fmt.Fprintln(w, "        $candidates = @('bash', 'zsh', 'fish', 'powershell')")
	fmt.Fprintln(w, "    } else {")
	fmt.Fprintln(w, "        $candidates = $flags[$words[1]]")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xmlview completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(xmlview completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(xmlview completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    xmlview completion fish > ~/.config/fish/completions/xmlview.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    xmlview completion powershell | Out-String | Invoke-Expression")
}
