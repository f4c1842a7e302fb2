package process_test

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/sdezurik/MolProbity/internal/adapters/process"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestToolRunner_Run(t *testing.T) {
	requireShell(t)
	runner := process.NewToolRunner()
	ctx := context.Background()

	tests := []struct {
		name       string
		script     string
		wantStdout string
		wantExit   int
		wantStderr string
	}{
		{"stdout captured", "printf 'A   5 ALA'", "A   5 ALA", 0, ""},
		{"non-zero exit", "echo oops >&2; exit 3", "", 3, "oops\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			res, err := runner.Run(ctx, secondary.ToolInvocation{
				Argv:   []string{"sh", "-c", tt.script},
				Dir:    t.TempDir(),
				Stdout: &out,
			})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if out.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantStdout)
			}
			if res.ExitCode != tt.wantExit {
				t.Errorf("exit = %d, want %d", res.ExitCode, tt.wantExit)
			}
			if res.Stderr != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", res.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestToolRunner_RunsInDir(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	var out bytes.Buffer
	_, err := process.NewToolRunner().Run(context.Background(), secondary.ToolInvocation{
		Argv:   []string{"sh", "-c", "pwd"},
		Dir:    dir,
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out.String()), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("pwd = %q, want %q", out.String(), dir)
	}
}

func TestToolRunner_Errors(t *testing.T) {
	runner := process.NewToolRunner()
	ctx := context.Background()

	if _, err := runner.Run(ctx, secondary.ToolInvocation{}); err == nil {
		t.Error("expected error for empty argv")
	}
	if _, err := runner.Run(ctx, secondary.ToolInvocation{Argv: []string{"molprobity-no-such-tool-12345"}}); err == nil {
		t.Error("expected error for missing program")
	}
	if _, err := runner.LookPath("molprobity-no-such-tool-12345"); err == nil {
		t.Error("LookPath should fail for missing program")
	}
}
