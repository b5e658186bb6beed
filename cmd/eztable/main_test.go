package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	messy = "|a|bb|\n|---|---|\n|c|d|\n"
	tidy  = "| a | bb |\n|---|----|\n| c | d  |\n"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "settings.toml")
	args = append([]string{"-config", cfg, "-log-level", "error"}, args...)
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "", "-version")
	if code != exitOK {
		t.Fatalf("exit = %d, want %d", code, exitOK)
	}
	if !strings.HasPrefix(out, "eztable dev\n") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatFileToStdout(t *testing.T) {
	path := writeDoc(t, messy)
	code, out, errOut := runCLI(t, "", path)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	if out != tidy {
		t.Errorf("stdout = %q, want %q", out, tidy)
	}
	data, _ := os.ReadFile(path)
	if string(data) != messy {
		t.Errorf("file changed without -w: %q", data)
	}
}

func TestFormatInPlace(t *testing.T) {
	path := writeDoc(t, messy)
	code, out, errOut := runCLI(t, "", "-w", path)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	data, _ := os.ReadFile(path)
	if string(data) != tidy {
		t.Errorf("file = %q, want %q", data, tidy)
	}
}

func TestFormatStdin(t *testing.T) {
	code, out, errOut := runCLI(t, "intro\n\n"+messy, "-align", "legacy")
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	want := "intro\n\n| a | bb |\n|---|----|\n| c |  d |\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestInspectQuery(t *testing.T) {
	path := writeDoc(t, messy)
	code, out, errOut := runCLI(t, "", "-inspect", "-query", "tables.0.widths", path)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	if got := strings.TrimSpace(out); got != "[1,2]" {
		t.Errorf("widths = %q, want [1,2]", got)
	}

	code, out, _ = runCLI(t, messy, "-inspect")
	if code != exitOK {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out, `"count":1`) {
		t.Errorf("report = %q, want count 1", out)
	}
}

func TestScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fmt.lua")
	src := "eztable.set_cursor(0, 0)\nlocal status = eztable.execute(\"ezFormatTable\")\nprint(status)\n"
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := runCLI(t, messy, "-script", script)
	if code != exitOK {
		t.Fatalf("exit = %d, stderr = %s", code, errOut)
	}
	if out != tidy {
		t.Errorf("stdout = %q, want %q", out, tidy)
	}
	if !strings.Contains(errOut, "ok") {
		t.Errorf("stderr = %q, want script output", errOut)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two modes", []string{"-inspect", "-watch", "x.md"}},
		{"write without file", []string{"-w"}},
		{"edit without file", []string{"-edit"}},
		{"two files", []string{"a.md", "b.md"}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, "", tt.args...); code != exitUsage {
				t.Errorf("exit = %d, want %d", code, exitUsage)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", filepath.Join(t.TempDir(), "missing.md"))
	if code != exitError {
		t.Errorf("exit = %d, want %d", code, exitError)
	}
	if !strings.Contains(errOut, "Error:") {
		t.Errorf("stderr = %q", errOut)
	}
}
