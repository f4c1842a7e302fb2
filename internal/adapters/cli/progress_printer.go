package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ProgressPrinter writes one line per stage transition of a running analysis.
type ProgressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewProgressPrinter creates a ProgressPrinter writing to out.
func NewProgressPrinter(out io.Writer) *ProgressPrinter {
	return &ProgressPrinter{out: out}
}

// StageStarted prints the stage description, or a completion line when the
// run has gone idle.
func (p *ProgressPrinter) StageStarted(ctx context.Context, modelID, stage, description string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := color.New(color.FgCyan).Sprint(modelID)
	if stage == "" {
		fmt.Fprintf(p.out, "%s %s analysis finished\n", color.New(color.FgGreen).Sprint("✓"), id)
		return
	}
	if description == "" {
		description = stage
	}
	fmt.Fprintf(p.out, "→ %s %s %s\n", id, color.New(color.FgHiBlack).Sprintf("[%s]", stage), description)
}

var _ secondary.ProgressObserver = (*ProgressPrinter)(nil)
