package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"
)

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_md2pptx_completions",
				"complete -o filenames -F _md2pptx_completions md2pptx",
				"--master|-m)",
				`compgen -W "default standard43"`,
				"--output|-o)",
				"compgen -f -X '!*.md'",
				`"bash zsh fish powershell"`,
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef md2pptx",
				"_describe 'command' commands",
				"'(-m --master)'{-m,--master}",
				":value:(default standard43)",
				"'*--set[style override name=value (repeatable)]",
				`_files -g "*.md *.markdown"`,
				"'--wireframe[also write a PNG wireframe per slide]'",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c md2pptx -f",
				"__fish_md2pptx_needs_command",
				"-n '__fish_md2pptx_using_command convert' -l master -s m -x -a 'default standard43'",
				"-l config -s c -r -a '(__fish_complete_suffix .yaml .yml)'",
				"-a '(__fish_complete_suffix .md .markdown)'",
			},
		},
		{
			name:  "powershell",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter -Native -CommandName md2pptx",
				"CompletionResult",
				"'--master' = @('default', 'standard43')",
				"'completion' = @('bash', 'zsh', 'fish', 'powershell')",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, ""); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"), "")
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Fatalf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an unsupported shell", buf.Len())
	}
}

func TestGetCommands_FlagsMatchFlagSet(t *testing.T) {
	t.Parallel()

	fs, _ := newConvertFlagSet()
	var want []string
	fs.VisitAll(func(f *flag.Flag) { want = append(want, f.Name) })

	commands := getCommands("")
	if diff := cmp.Diff([]string{"convert", "version", "help", "completion"}, commandNames(commands)); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}

	var got []string
	byName := map[string]flagDef{}
	for _, f := range commands[0].Flags {
		got = append(got, f.Long)
		byName[f.Long] = f
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("convert flags mismatch (-want +got):\n%s", diff)
	}

	checks := []struct {
		flag string
		want flagType
	}{
		{"master", flagEnum},
		{"set", flagEnum},
		{"config", flagFile},
		{"output", flagDir},
		{"asset-path", flagDir},
		{"wireframe", flagBool},
		{"workers", flagInt},
		{"dpi", flagFloat},
	}
	for _, c := range checks {
		if got := byName[c.flag].Type; got != c.want {
			t.Errorf("--%s type = %d, want %d", c.flag, got, c.want)
		}
	}
	if !byName["set"].Repeatable {
		t.Error("--set is not repeatable")
	}
	if !contains(byName["set"].Values, "baseTextSize=") {
		t.Errorf("--set values = %v, want option names", byName["set"].Values)
	}
}

func TestGetCommands_CustomMasters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	master, err := os.ReadFile(filepath.Join("..", "..", "internal", "assets", "masters", "standard43.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "masters", "wide.yaml"), string(master))

	var masters []string
	for _, f := range getCommands(dir)[0].Flags {
		if f.Long == "master" {
			masters = f.Values
		}
	}
	if diff := cmp.Diff([]string{"default", "standard43", "wide"}, masters); diff != "" {
		t.Errorf("masters mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMain_Completion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"usage", []string{"md2pptx", "completion"}, ExitSuccess, "Supported shells:", ""},
		{"bash", []string{"md2pptx", "completion", "bash"}, ExitSuccess, "_md2pptx_completions", ""},
		{"unsupported", []string{"md2pptx", "completion", "tcsh"}, ExitUsage, "", "unsupported shell"},
		{"help", []string{"md2pptx", "help", "completion"}, ExitSuccess, "Usage: md2pptx completion", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			if got := runMain(tt.args, env.Environment); got != tt.wantCode {
				t.Errorf("runMain() = %d, want %d", got, tt.wantCode)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
