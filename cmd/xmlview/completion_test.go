package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell    Shell
		contains []string
	}{
		{ShellBash, []string{"complete -F _xmlview xmlview", "--page-size|-p)", "letter a4 legal"}},
		{ShellZsh, []string{"#compdef xmlview", "'export:Print records to PDF'", "(portrait landscape)"}},
		{ShellFish, []string{"complete -c xmlview", "-l expand-all -s a", "'auto always never'"}},
		{ShellPowerShell, []string{"Register-ArgumentCompleter", "'--tree-json'"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			out := buf.String()
			for _, name := range commandNames {
				if !strings.Contains(out, name) {
					t.Errorf("%s script missing command %q", tt.shell, name)
				}
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("GenerateCompletion(tcsh) error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestGetCommands_FlagsMatchParsers(t *testing.T) {
	t.Parallel()

	byName := map[string]commandDef{}
	for _, c := range getCommands() {
		byName[c.Name] = c
	}
	if len(byName) != len(commandNames) {
		t.Fatalf("got %d commands, want %d", len(byName), len(commandNames))
	}

	flagsOf := func(cmd string) map[string]flagDef {
		m := map[string]flagDef{}
		for _, f := range byName[cmd].Flags {
			m[f.Long] = f
		}
		return m
	}

	export := flagsOf("export")
	if f, ok := export["page-size"]; !ok || f.Type != flagEnum || f.Short != "p" {
		t.Errorf("export page-size = %+v", f)
	}
	if f := export["workers"]; f.Type != flagInt {
		t.Errorf("export workers type = %v, want int", f.Type)
	}
	if _, ok := export["color"]; ok {
		t.Error("export should not offer --color")
	}

	preview := flagsOf("preview")
	if f := preview["asset-path"]; f.Type != flagDir {
		t.Errorf("asset-path type = %v, want dir", f.Type)
	}
	if f := preview["config"]; f.Type != flagFile || f.FileGlob == "" {
		t.Errorf("config = %+v, want file flag", f)
	}

	if len(byName["version"].Flags) != 0 {
		t.Error("version takes no flags")
	}
	if byName["copy"].FilePattern == "" {
		t.Error("copy should complete input files")
	}
}

func TestGlobExtensions(t *testing.T) {
	t.Parallel()

	got := globExtensions("*.xml, *.json")
	if strings.Join(got, ",") != "xml,json" {
		t.Errorf("globExtensions() = %v", got)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if err := runCompletion(nil, env.Environment); err != nil {
		t.Fatalf("runCompletion(nil): %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Usage: xmlview completion <shell>") {
		t.Errorf("stdout = %q", env.stdout)
	}

	env = newTestEnv(t)
	if err := runCompletion([]string{"bash"}, env.Environment); err != nil {
		t.Fatalf("runCompletion(bash): %v", err)
	}
	if !strings.HasPrefix(env.stdout.String(), "# bash completion for xmlview") {
		t.Errorf("stdout = %q", env.stdout)
	}
}
