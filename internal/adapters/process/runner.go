// Package process runs external analyzer programs.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ToolRunner implements secondary.ToolRunner with os/exec.
type ToolRunner struct{}

// NewToolRunner creates a new ToolRunner.
func NewToolRunner() *ToolRunner {
	return &ToolRunner{}
}

// Run executes the invocation and waits for it to finish.
func (r *ToolRunner) Run(ctx context.Context, inv secondary.ToolInvocation) (*secondary.ToolResult, error) {
	if len(inv.Argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Stdout = inv.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &secondary.ToolResult{Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", inv.Argv[0], err)
	}
	return result, nil
}

// LookPath searches PATH for program.
func (r *ToolRunner) LookPath(program string) (string, error) {
	return exec.LookPath(program)
}

// Ensure ToolRunner implements the interface
var _ secondary.ToolRunner = (*ToolRunner)(nil)
