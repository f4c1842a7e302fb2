package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.HydrogenBondLength != BLengthECloud {
		t.Errorf("HydrogenBondLength = %q, want %q", cfg.HydrogenBondLength, BLengthECloud)
	}
	if _, ok := cfg.Tools["clash"]; !ok {
		t.Error("default tools should include clash")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Default()
	cfg.DataDir = filepath.Join(tmpDir, "data")
	cfg.HydrogenBondLength = BLengthNuclear
	cfg.Tools["clash"] = []string{"my-clashlist", "{input}"}

	if err := SaveConfig(tmpDir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, DirName, FileName)); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.DataDir != cfg.DataDir || loaded.HydrogenBondLength != BLengthNuclear {
		t.Errorf("loaded = %+v", loaded)
	}
	if !slices.Equal(loaded.Tools["clash"], []string{"my-clashlist", "{input}"}) {
		t.Errorf("clash tool = %v", loaded.Tools["clash"])
	}
}

func TestLoadConfig_PartialFileMergesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfgDir := filepath.Join(tmpDir, DirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	yml := strings.Join([]string{
		"lib_dir: /opt/mp/lib",
		"tools:",
		"  rotamer: [phenix.rotalyze, \"{input}\"]",
	}, "\n")
	if err := os.WriteFile(filepath.Join(cfgDir, FileName), []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LibDir != "/opt/mp/lib" {
		t.Errorf("LibDir = %q", cfg.LibDir)
	}
	if !slices.Equal(cfg.Tools["rotamer"], []string{"phenix.rotalyze", "{input}"}) {
		t.Errorf("rotamer tool = %v", cfg.Tools["rotamer"])
	}
	if !slices.Equal(cfg.Tools["cbeta"], DefaultTools()["cbeta"]) {
		t.Errorf("cbeta tool should keep its default, got %v", cfg.Tools["cbeta"])
	}
	if cfg.HydrogenBondLength != BLengthECloud {
		t.Errorf("HydrogenBondLength = %q", cfg.HydrogenBondLength)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"bad yaml", "tools: [unclosed"},
		{"bad bond length", "hydrogen_bond_length: covalent"},
		{"empty tool", "tools:\n  clash: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfgDir := filepath.Join(tmpDir, DirName)
			if err := os.MkdirAll(cfgDir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(cfgDir, FileName), []byte(tt.yml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(tmpDir); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDBPath(t *testing.T) {
	cfg := &Config{DataDir: "/srv/mp"}
	if got := cfg.DBPath(); got != filepath.Join("/srv/mp", "molprobity.db") {
		t.Errorf("DBPath() = %q", got)
	}
}
