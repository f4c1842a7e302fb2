package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Hydrogen bond length conventions understood by reduce and the clash tools.
const (
	BLengthECloud  = "ecloud"
	BLengthNuclear = "nuclear"
)

// DirName is the per-project configuration directory.
const DirName = ".molprobity"

// FileName is the configuration file inside DirName.
const FileName = "config.yaml"

// Config represents the molprobity configuration
type Config struct {
	DataDir            string              `yaml:"data_dir"`             // model directories and the database
	LibDir             string              `yaml:"lib_dir"`              // analyzer jars and data, {lib} in templates
	HydrogenBondLength string              `yaml:"hydrogen_bond_length"` // ecloud or nuclear
	Tools              map[string][]string `yaml:"tools"`                // stage name -> argv template
}

// Default returns the built-in configuration.
func Default() *Config {
	dataDir := DirName
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, DirName)
	}
	return &Config{
		DataDir:            dataDir,
		LibDir:             "/usr/local/share/molprobity/lib",
		HydrogenBondLength: BLengthECloud,
		Tools:              DefaultTools(),
	}
}

// DefaultTools returns the stock analyzer invocations, keyed by stage.
func DefaultTools() map[string][]string {
	return map[string][]string{
		"reduce":       {"reduce", "-keep", "-noadjust", "-his", "{input}"},
		"cbeta":        {"prekin", "-cbdevdump", "{input}"},
		"rotamer":      {"java", "-cp", "{lib}/hless.jar", "hless.Rotamer", "-raw", "{input}"},
		"ramachandran": {"java", "-cp", "{lib}/hless.jar", "hless.Ramachandran", "-nokin", "-raw", "{input}"},
		"clash":        {"clashlist", "{input}", "40", "10", "{blength}"},
		"omega":        {"omegalyze", "{input}"},
		"geometry":     {"mp_geo", "pdb={input}", "out_file={output}", "outliers_only=False"},
		"multiKin":     {"prekin", "-append", "-nogroup", "-scope", "-show", "{show}", "{input}"},
		"ramaPlot":     {"java", "-cp", "{lib}/chiropraxis.jar", "chiropraxis.rotarama.Ramalyze", "-kinplot", "{input}"},
		"cbetaKin":     {"prekin", "-cbetadev", "{input}"},
		"aacKin":       {"probe", "-4H", "-quiet", "-noticks", "-nogroup", "-dotmaster", "-mc", "-self", "ALL", "{input}"},
	}
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	switch c.HydrogenBondLength {
	case BLengthECloud, BLengthNuclear:
	default:
		return fmt.Errorf("hydrogen_bond_length must be %q or %q, got %q", BLengthECloud, BLengthNuclear, c.HydrogenBondLength)
	}
	for name, argv := range c.Tools {
		if len(argv) == 0 {
			return fmt.Errorf("tool %q has an empty command", name)
		}
	}
	return nil
}

// DBPath returns the database file inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "molprobity.db")
}

// LoadConfig reads .molprobity/config.yaml from the specified directory.
// Keys missing from the file keep their default values; tools listed in the
// file replace the default entry of the same name only.
// A missing file is not an error: the defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, DirName, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	merge(cfg, &file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func merge(dst, src *Config) {
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.LibDir != "" {
		dst.LibDir = src.LibDir
	}
	if src.HydrogenBondLength != "" {
		dst.HydrogenBondLength = src.HydrogenBondLength
	}
	for name, argv := range src.Tools {
		dst.Tools[name] = argv
	}
}

// SaveConfig writes config.yaml to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
