package secondary

import "context"

// WorkspaceAdapter defines the secondary port for model directories and
// scratch sessions on the filesystem.
type WorkspaceAdapter interface {
	// Model directories
	CreateModelDir(ctx context.Context, modelID string) (string, error)
	RemoveModelDir(ctx context.Context, modelID string) error
	ModelDir(modelID string) string

	// ImportFile copies src into dir and returns the new path.
	ImportFile(ctx context.Context, src, dir string) (string, error)

	// Scratch sessions, one per batch input
	CreateSession(ctx context.Context) (string, error)
	DestroySession(ctx context.Context, dir string) error
}
