package secondary

import "context"

// ProgressObserver is told which stage a model's analysis has entered.
// Notifications are fire-and-forget: observers handle their own failures.
type ProgressObserver interface {
	StageStarted(ctx context.Context, modelID, stage, description string)
}

// ProgressRepository defines the secondary port for progress persistence.
type ProgressRepository interface {
	// Record stores the current stage of a model; an empty stage means idle.
	Record(ctx context.Context, modelID, stage string) error

	// Get returns the current stage of a model, empty when none is recorded.
	Get(ctx context.Context, modelID string) (string, error)
}
