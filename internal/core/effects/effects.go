// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// Log levels understood by the executor.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// Warn is shorthand for a warn-level LogEffect.
func Warn(msg string, fields map[string]any) LogEffect {
	return LogEffect{Level: LevelWarn, Message: msg, Fields: fields}
}

// Info is shorthand for an info-level LogEffect.
func Info(msg string, fields map[string]any) LogEffect {
	return LogEffect{Level: LevelInfo, Message: msg, Fields: fields}
}

// File operations.
const (
	FileWrite  = "write"
	FileAppend = "append"
	FileRemove = "remove"
)

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // write, append, remove
	Path      string
	Content   []byte // For write and append operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// ExecEffect runs an external analyzer. Standard output goes to StdoutPath
// (truncated unless Append is set) when one is given. A failed run is not an
// error of the effect: the analyzer's output file is simply empty or partial.
type ExecEffect struct {
	Tool       string   // configured tool name, for logging
	Argv       []string // argv[0] is the program
	Dir        string
	StdoutPath string
	Append     bool
}

func (e ExecEffect) EffectType() string { return "exec" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
