package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/salmonumbrella/tabulate/internal/config"
)

// setupTestEnv points the config at a temp file and clears environment that
// would leak into command output. It returns the config path.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabulate", "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	t.Setenv(EnvOutput, "")
	t.Setenv("NO_COLOR", "1")
	return path
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func runApp(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := &App{
		Stdin:     strings.NewReader(stdin),
		Stdout:    &stdout,
		Stderr:    &stderr,
		Version:   "1.0.0",
		Commit:    "abc123",
		BuildTime: "2026-01-01",
	}
	err := app.Execute(context.Background(), args)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "mixed values in one column",
			stdin: `[[null], ["a"], [0], [false]]`,
			args:  []string{"-i", "json"},
			want:  "-----\n\na\n0\nFalse\n-----\n",
		},
		{
			name:  "csv with inferred integers and headers flag",
			stdin: "spam,42\neggs,451\n",
			args:  []string{"--infer", "--headers", "item,qty"},
			want:  "item    qty\n----- -----\nspam     42\neggs    451\n----- -----\n",
		},
		{
			name:  "csv text stays left aligned",
			stdin: "spam,42\n",
			args:  []string{"-"},
			want:  "----- -----\nspam  42   \n----- -----\n",
		},
		{
			name:  "quoted csv field with a line break",
			stdin: "\"a\nb\",1\nc,2\n",
			args:  []string{"--infer"},
			want:  "----- -----\na         1\nb          \nc         2\n----- -----\n",
		},
		{
			name:  "header row",
			stdin: "name\tkind\nx\ty\n",
			args:  []string{"-i", "tsv", "--header-row"},
			want:  "name  kind \n----- -----\nx     y    \n----- -----\n",
		},
		{
			name:  "missing and separator",
			stdin: "a,\n,b\n",
			args:  []string{"--missing", "-", "--sep", "|"},
			want:  "-----|-----\na    |-    \n-    |b    \n-----|-----\n",
		},
		{
			name:  "min width",
			stdin: "a,b\n",
			args:  []string{"--min-width", "1"},
			want:  "- -\na b\n- -\n",
		},
		{
			name:  "query selects rows",
			stdin: `{"items": [{"n": "x", "v": 1}, {"n": "yy", "v": 22}]}`,
			args:  []string{"-i", "json", "-q", "[.items[] | [.n, .v]]"},
			want:  "----- -----\nx         1\nyy       22\n----- -----\n",
		},
		{
			name:  "jsonpath selects rows",
			stdin: "rows:\n  - [a, true]\n",
			args:  []string{"-i", "yaml", "--jsonpath", "rows"},
			want:  "----- -----\na     True \n----- -----\n",
		},
		{
			name:  "empty input",
			stdin: "",
			args:  nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnv(t)
			res := runApp(t, tt.stdin, tt.args...)
			if res.err != nil {
				t.Fatalf("Execute() error = %v\nstderr: %s", res.err, res.stderr)
			}
			if diff := cmp.Diff(tt.want, res.stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_FileArgument(t *testing.T) {
	setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "rows.yaml")
	if err := os.WriteFile(path, []byte("- {name: spam, qty: 42}\n- {name: eggs, qty: 451}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := runApp(t, "", path)
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	want := "name    qty\n----- -----\nspam     42\neggs    451\n----- -----\n"
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EmptyInputNotice(t *testing.T) {
	setupTestEnv(t)
	res := runApp(t, "")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if !strings.Contains(res.stderr, "Input has no rows") {
		t.Errorf("stderr = %q, want empty-input notice", res.stderr)
	}

	res = runApp(t, "", "--quiet")
	if res.stderr != "" {
		t.Errorf("stderr with --quiet = %q, want empty", res.stderr)
	}
}

func TestRender_HeadersOverrideWarning(t *testing.T) {
	setupTestEnv(t)
	res := runApp(t, `[{"a": 1}]`, "-i", "json", "--headers", "x")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "x\n-----\n") {
		t.Errorf("stdout = %q, want header x", res.stdout)
	}
	if !strings.Contains(res.stderr, "--headers replaces") {
		t.Errorf("stderr = %q, want warning", res.stderr)
	}
}

func TestRender_OutputFormats(t *testing.T) {
	t.Run("compact json", func(t *testing.T) {
		setupTestEnv(t)
		res := runApp(t, `[["a", 1, null]]`, "-i", "json", "-o", "json", "--compact-json")
		if res.err != nil {
			t.Fatalf("Execute() error = %v", res.err)
		}
		if got, want := res.stdout, `{"rows":[["a",1,null]]}`+"\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
	})

	t.Run("env selects ndjson", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv(EnvOutput, "jsonl")
		res := runApp(t, "a,1\n", "--infer")
		if res.err != nil {
			t.Fatalf("Execute() error = %v", res.err)
		}
		if got, want := res.stdout, `["a",1]`+"\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
	})

	t.Run("flag beats env and config", func(t *testing.T) {
		path := setupTestEnv(t)
		writeConfig(t, path, "output: yaml\n")
		t.Setenv(EnvOutput, "json")
		res := runApp(t, "a\n", "-o", "text")
		if res.err != nil {
			t.Fatalf("Execute() error = %v", res.err)
		}
		if got, want := res.stdout, "-----\na\n-----\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
	})

	t.Run("config output", func(t *testing.T) {
		path := setupTestEnv(t)
		writeConfig(t, path, "output: json\n")
		res := runApp(t, "a\n", "--headers", "h")
		if res.err != nil {
			t.Fatalf("Execute() error = %v", res.err)
		}
		var env struct {
			Headers []string `json:"headers"`
			Rows    [][]any  `json:"rows"`
		}
		if err := json.Unmarshal([]byte(res.stdout), &env); err != nil {
			t.Fatalf("invalid JSON %q: %v", res.stdout, err)
		}
		if diff := cmp.Diff([]string{"h"}, env.Headers); diff != "" {
			t.Errorf("headers mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRender_ConfigLayout(t *testing.T) {
	path := setupTestEnv(t)
	writeConfig(t, path, "min_width: 1\nseparator: \" | \"\nmissing: \"?\"\ninput: tsv\n")

	res := runApp(t, "a\t\n")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if got, want := res.stdout, "- | -\na | ?\n- | -\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	res = runApp(t, "a\t\n", "--min-width", "2", "--separator", " ", "--missing", "")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if got, want := res.stdout, "-- --\na    \n-- --\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "unsupported float",
			stdin:      `[["a", 1.5]]`,
			args:       []string{"-i", "json"},
			wantCode:   ExitUser,
			wantStderr: "unsupported value kind: float64 at row 0, column 1",
		},
		{
			name:       "invalid output",
			args:       []string{"-o", "html"},
			wantCode:   ExitUser,
			wantStderr: `invalid --output format "html"`,
		},
		{
			name:       "invalid input",
			args:       []string{"-i", "xml"},
			wantCode:   ExitUser,
			wantStderr: `invalid --input format "xml"`,
		},
		{
			name:       "invalid color",
			args:       []string{"--color", "sometimes"},
			wantCode:   ExitUser,
			wantStderr: "invalid color mode",
		},
		{
			name:       "query and jsonpath",
			args:       []string{"-i", "json", "-q", ".", "--jsonpath", "$"},
			wantCode:   ExitUser,
			wantStderr: "only one of --query or --jsonpath",
		},
		{
			name:       "query on csv",
			stdin:      "a\n",
			args:       []string{"-q", "."},
			wantCode:   ExitUser,
			wantStderr: "need structured input",
		},
		{
			name:       "header row on objects",
			stdin:      `[{"a": 1}]`,
			args:       []string{"-i", "json", "--header-row"},
			wantCode:   ExitUser,
			wantStderr: "cannot be taken from an array of objects",
		},
		{
			name:       "negative min width",
			args:       []string{"--min-width", "-1"},
			wantCode:   ExitUser,
			wantStderr: "min-width",
		},
		{
			name:       "multi-line separator",
			args:       []string{"--sep", "\n"},
			wantCode:   ExitUser,
			wantStderr: "must not contain line breaks",
		},
		{
			name:       "unknown flag",
			args:       []string{"--bogus"},
			wantCode:   ExitUser,
			wantStderr: "invalid flag",
		},
		{
			name:       "too many files",
			args:       []string{"a.csv", "b.csv"},
			wantCode:   ExitUser,
			wantStderr: "expected at most one input file",
		},
		{
			name:       "missing file",
			args:       []string{"does-not-exist.csv"},
			wantCode:   ExitUser,
			wantStderr: "Hint: Check that the file exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnv(t)
			res := runApp(t, tt.stdin, tt.args...)
			if res.err == nil {
				t.Fatalf("Execute() expected error, stdout: %q", res.stdout)
			}
			if got := ExitCode(res.err); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d (err: %v)", got, tt.wantCode, res.err)
			}
			if !strings.Contains(res.stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", res.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRender_StructuredErrorEnvelope(t *testing.T) {
	setupTestEnv(t)
	res := runApp(t, `[["h"], [1.5]]`, "-i", "json", "--header-row", "-o", "json")
	if res.err == nil {
		t.Fatal("Execute() expected error")
	}

	var env struct {
		Error map[string]any `json:"error"`
	}
	if err := json.Unmarshal([]byte(res.stderr), &env); err != nil {
		t.Fatalf("stderr is not JSON %q: %v", res.stderr, err)
	}
	want := map[string]any{
		"message":    "unsupported value kind: float64 at row 1, column 0",
		"category":   "user",
		"suggestion": "Cells may only hold null, booleans, integers or strings",
		"type":       "unsupported_value",
		"value_type": "float64",
		"row":        float64(1),
		"column":     float64(0),
	}
	if diff := cmp.Diff(want, env.Error); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, want nothing", res.stdout)
	}
}

func TestVersion(t *testing.T) {
	setupTestEnv(t)
	res := runApp(t, "", "--version")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if got, want := res.stdout, "tbl 1.0.0 (commit: abc123, built: 2026-01-01)\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRootHelp_CustomMenu(t *testing.T) {
	setupTestEnv(t)
	res := runApp(t, "", "--help")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	for _, snippet := range []string{
		"tbl - render rows as a plain-text table",
		"Input formats",
		"Output formats",
		"Exit codes:",
		"TBL_OUTPUT",
	} {
		if !strings.Contains(res.stdout, snippet) {
			t.Fatalf("root help missing %q\nhelp output:\n%s", snippet, res.stdout)
		}
	}
}

func TestRootHelp_SubcommandFallback(t *testing.T) {
	setupTestEnv(t)
	res := runApp(t, "", "config", "--help")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "Manage tbl configuration") {
		t.Errorf("config help = %q", res.stdout)
	}
	if strings.Contains(res.stdout, "Quick start:") {
		t.Error("subcommand help should not print the root menu")
	}
}

func TestCompletion(t *testing.T) {
	setupTestEnv(t)
	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			res := runApp(t, "", "completion", shell)
			if res.err != nil {
				t.Fatalf("Execute() error = %v", res.err)
			}
			if !strings.Contains(res.stdout, "tbl") {
				t.Errorf("%s completion does not mention tbl", shell)
			}
		})
	}

	res := runApp(t, "", "completion", "tcsh")
	if ExitCode(res.err) != ExitUser {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(res.err), ExitUser)
	}
}
