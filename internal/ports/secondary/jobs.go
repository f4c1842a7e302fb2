package secondary

import "context"

// JobLauncher defines the secondary port for detached terminal sessions
// running background analyses.
type JobLauncher interface {
	// Launch starts argv in a new detached session named session.
	Launch(ctx context.Context, session, workDir string, argv []string) error

	// SessionExists reports whether the session is still alive.
	SessionExists(ctx context.Context, session string) bool

	// KillSession ends the session.
	KillSession(ctx context.Context, session string) error

	// AttachInstructions tells a user how to watch the session.
	AttachInstructions(session string) string
}

// JobRepository defines the secondary port for job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *JobRecord) error
	GetByID(ctx context.Context, id string) (*JobRecord, error)
	List(ctx context.Context) ([]*JobRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// JobRecord represents a background job as stored in persistence.
type JobRecord struct {
	ID        string
	Session   string
	PDBPath   string
	Command   string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// Job statuses.
const (
	JobStatusRunning  = "running"
	JobStatusFinished = "finished"
	JobStatusKilled   = "killed"
)
