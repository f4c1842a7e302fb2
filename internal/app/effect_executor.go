// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
// Log effects are written to logOut, one line each.
type DefaultEffectExecutor struct {
	runner secondary.ToolRunner
	logOut io.Writer
	mu     sync.Mutex
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(runner secondary.ToolRunner, logOut io.Writer) *DefaultEffectExecutor {
	if logOut == nil {
		logOut = os.Stderr
	}
	return &DefaultEffectExecutor{runner: runner, logOut: logOut}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(typed)
	case effects.ExecEffect:
		return e.executeExec(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.log(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(eff effects.FileEffect) error {
	mode := os.FileMode(eff.Mode)
	switch eff.Operation {
	case effects.FileWrite:
		if mode == 0 {
			mode = 0644
		}
		return os.WriteFile(eff.Path, eff.Content, mode)
	case effects.FileAppend:
		if mode == 0 {
			mode = 0644
		}
		f, err := os.OpenFile(eff.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			return err
		}
		if _, err := f.Write(eff.Content); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case effects.FileRemove:
		if err := os.Remove(eff.Path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

// executeExec runs an analyzer. Only a failure to open the output file is an
// error; a tool that cannot start or exits non-zero is logged and its output
// is whatever it managed to write.
func (e *DefaultEffectExecutor) executeExec(ctx context.Context, eff effects.ExecEffect) error {
	inv := secondary.ToolInvocation{Argv: eff.Argv, Dir: eff.Dir}

	if eff.StdoutPath != "" {
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if eff.Append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		out, err := os.OpenFile(eff.StdoutPath, flags, 0644)
		if err != nil {
			return fmt.Errorf("failed to open output for %s: %w", eff.Tool, err)
		}
		defer out.Close()
		inv.Stdout = out
	}

	res, err := e.runner.Run(ctx, inv)
	if err != nil {
		e.log(effects.Warn("analyzer failed to start", map[string]any{"tool": eff.Tool, "error": err.Error()}))
		return nil
	}
	if res.ExitCode != 0 {
		e.log(effects.Warn("analyzer exited with an error", map[string]any{
			"tool":   eff.Tool,
			"exit":   res.ExitCode,
			"stderr": firstLine(res.Stderr),
		}))
	}
	return nil
}

func (e *DefaultEffectExecutor) log(eff effects.LogEffect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.logOut, FormatLog(eff))
}

// FormatLog renders a log effect as "[level] message key=value ..." with
// fields in key order.
func FormatLog(eff effects.LogEffect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", eff.Level, eff.Message)

	keys := make([]string, 0, len(eff.Fields))
	for k := range eff.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := fmt.Sprint(eff.Fields[k])
		if strings.ContainsAny(v, " \t") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
