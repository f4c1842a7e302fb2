// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// WorkspaceAdapter implements secondary.WorkspaceAdapter for filesystem operations.
// Model directories live under <base>/models and scratch sessions under <base>/tmp.
type WorkspaceAdapter struct {
	modelsBasePath   string
	sessionsBasePath string
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter rooted at dataDir.
// If dataDir is empty, defaults to ~/.molprobity.
func NewWorkspaceAdapter(dataDir string) (*WorkspaceAdapter, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".molprobity")
	}

	return &WorkspaceAdapter{
		modelsBasePath:   filepath.Join(dataDir, "models"),
		sessionsBasePath: filepath.Join(dataDir, "tmp"),
	}, nil
}

// ModelDir returns the directory holding a model's files.
func (a *WorkspaceAdapter) ModelDir(modelID string) string {
	return filepath.Join(a.modelsBasePath, modelID)
}

// CreateModelDir creates the directory for a model.
func (a *WorkspaceAdapter) CreateModelDir(ctx context.Context, modelID string) (string, error) {
	dir := a.ModelDir(modelID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}
	return dir, nil
}

// RemoveModelDir removes a model directory and all contents.
func (a *WorkspaceAdapter) RemoveModelDir(ctx context.Context, modelID string) error {
	if err := os.RemoveAll(a.ModelDir(modelID)); err != nil {
		return fmt.Errorf("failed to remove model directory: %w", err)
	}
	return nil
}

// ImportFile copies src into dir, keeping its base name.
func (a *WorkspaceAdapter) ImportFile(ctx context.Context, src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	dst := filepath.Join(dir, filepath.Base(src))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return dst, nil
}

// CreateSession creates a fresh scratch directory.
func (a *WorkspaceAdapter) CreateSession(ctx context.Context) (string, error) {
	dir := filepath.Join(a.sessionsBasePath, uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}
	return dir, nil
}

// DestroySession removes a scratch directory created by CreateSession.
func (a *WorkspaceAdapter) DestroySession(ctx context.Context, dir string) error {
	rel, err := filepath.Rel(a.sessionsBasePath, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to remove %s: not a session directory", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove session directory: %w", err)
	}
	return nil
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*WorkspaceAdapter)(nil)
