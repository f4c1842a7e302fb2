package secondary

import (
	"context"
	"io"
)

// ToolRunner defines the secondary port for invoking external analyzers.
type ToolRunner interface {
	// Run blocks until the program exits. The error reports only a failure to
	// start; a non-zero exit is returned in the result.
	Run(ctx context.Context, inv ToolInvocation) (*ToolResult, error)

	// LookPath reports where program would be found, for diagnostics.
	LookPath(program string) (string, error)
}

// ToolInvocation describes one analyzer run.
type ToolInvocation struct {
	Argv   []string
	Dir    string
	Stdout io.Writer // nil discards
}

// ToolResult describes a finished analyzer run.
type ToolResult struct {
	ExitCode int
	Stderr   string
}
