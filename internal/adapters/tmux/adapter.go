// Package tmux runs background analyses in detached tmux sessions.
package tmux

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/GianlucaP106/gotmux/gotmux"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// Adapter implements secondary.JobLauncher on top of gotmux.
type Adapter struct {
	tmux *gotmux.Tmux
}

// NewAdapter creates a new tmux adapter.
func NewAdapter() (*Adapter, error) {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux client: %w", err)
	}
	return &Adapter{tmux: tmux}, nil
}

// Launch creates a detached session and replaces its shell with argv.
// The session ends when argv exits.
func (a *Adapter) Launch(ctx context.Context, session, workDir string, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command for session %s", session)
	}

	s, err := a.tmux.NewSession(&gotmux.SessionOptions{
		Name:           session,
		StartDirectory: workDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	windows, err := s.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	if len(windows) == 0 {
		return fmt.Errorf("no windows found in new session")
	}
	panes, err := windows[0].ListPanes()
	if err != nil {
		return fmt.Errorf("failed to list panes: %w", err)
	}
	if len(panes) == 0 {
		return fmt.Errorf("no panes found in new session")
	}

	args := append([]string{"respawn-pane", "-t", panes[0].Id, "-k"}, argv...)
	if out, err := exec.CommandContext(ctx, "tmux", args...).CombinedOutput(); err != nil {
		return fmt.Errorf("failed to start job: %w: %s", err, string(out))
	}
	return nil
}

// SessionExists checks if a tmux session exists
func (a *Adapter) SessionExists(ctx context.Context, session string) bool {
	s, err := a.getSession(session)
	return err == nil && s != nil
}

// KillSession terminates a tmux session
func (a *Adapter) KillSession(ctx context.Context, session string) error {
	s, err := a.getSession(session)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session %s not found", session)
	}
	return s.Kill()
}

func (a *Adapter) getSession(name string) (*gotmux.Session, error) {
	sessions, err := a.tmux.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

// AttachInstructions returns instructions for attaching to a session
func (a *Adapter) AttachInstructions(session string) string {
	return fmt.Sprintf("Attach to session: tmux attach -t %s\n\n"+
		"TMux Commands:\n"+
		"  Scroll output: Ctrl+b then [\n"+
		"  Detach session: Ctrl+b then d\n",
		session)
}

// Ensure Adapter implements the interface
var _ secondary.JobLauncher = (*Adapter)(nil)
