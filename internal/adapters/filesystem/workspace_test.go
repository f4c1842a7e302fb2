package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdezurik/MolProbity/internal/adapters/filesystem"
)

func TestWorkspaceAdapter_ModelDirOperations(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	ctx := context.Background()

	dir, err := adapter.CreateModelDir(ctx, "MODEL-001")
	if err != nil {
		t.Fatalf("CreateModelDir failed: %v", err)
	}
	if dir != filepath.Join(tmpDir, "models", "MODEL-001") {
		t.Errorf("dir = %q", dir)
	}
	if dir != adapter.ModelDir("MODEL-001") {
		t.Error("ModelDir should match the created directory")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}

	if err := adapter.RemoveModelDir(ctx, "MODEL-001"); err != nil {
		t.Fatalf("RemoveModelDir failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("expected directory to not exist after removal")
	}
}

func TestWorkspaceAdapter_ImportFile(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	src := filepath.Join(tmpDir, "1ubq.pdb")
	content := "ATOM      1  N   MET A   1      27.340  24.430   2.614  1.00  9.67           N\n"
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	dir, err := adapter.CreateModelDir(ctx, "MODEL-001")
	if err != nil {
		t.Fatal(err)
	}

	dst, err := adapter.ImportFile(ctx, src, dir)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if dst != filepath.Join(dir, "1ubq.pdb") {
		t.Errorf("dst = %q", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Errorf("content = %q", got)
	}

	if _, err := adapter.ImportFile(ctx, filepath.Join(tmpDir, "missing.pdb"), dir); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestWorkspaceAdapter_Sessions(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	ctx := context.Background()
	first, err := adapter.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	second, err := adapter.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if first == second {
		t.Error("sessions should be distinct")
	}
	if filepath.Dir(first) != filepath.Join(tmpDir, "tmp") {
		t.Errorf("session %q not under tmp", first)
	}

	if err := os.WriteFile(filepath.Join(first, "x.data"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := adapter.DestroySession(ctx, first); err != nil {
		t.Fatalf("DestroySession failed: %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("session should be removed")
	}
	if _, err := os.Stat(second); err != nil {
		t.Error("other session should survive")
	}
}

func TestWorkspaceAdapter_DestroySessionRejectsOutsidePaths(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	tests := []struct {
		name string
		dir  string
	}{
		{"session root", filepath.Join(tmpDir, "tmp")},
		{"data dir", tmpDir},
		{"sibling", filepath.Join(tmpDir, "models", "MODEL-001")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := adapter.DestroySession(context.Background(), tt.dir); err == nil {
				t.Errorf("expected error removing %s", tt.dir)
			}
		})
	}
}
