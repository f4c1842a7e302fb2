package primary

import "context"

// JobService defines the primary port for background analysis runs.
type JobService interface {
	// LaunchJob starts an analysis of req.PDBPath in a detached terminal session.
	LaunchJob(ctx context.Context, req LaunchJobRequest) (*Job, error)

	// ListJobs lists recorded jobs, refreshing the status of running ones.
	ListJobs(ctx context.Context) ([]*Job, error)

	// KillJob ends a job's session and marks it killed.
	KillJob(ctx context.Context, jobID string) error
}

// LaunchJobRequest contains parameters for a background analysis.
type LaunchJobRequest struct {
	PDBPath string
	Args    []string // analyze flags, passed through unchanged
	WorkDir string
}

// Job is a background analysis run.
type Job struct {
	ID        string
	Session   string
	PDBPath   string
	Command   string
	Status    string // running, finished, killed
	CreatedAt string
	UpdatedAt string

	Attach string // how to follow the session; set by LaunchJob only
}
