package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the decoded form of a project-level incan.yaml (spec §4.1's
// ambient configuration layer): it overrides the output directory, the
// target edition, and per-crate version/feature pins layered on top of the
// known-good table. Every field has a spec-mandated default, so a missing
// or partial file is never an error.
type Config struct {
	OutDir      string               `yaml:"out_dir"`
	Edition     string               `yaml:"edition"`
	BinaryName  string               `yaml:"binary_name"`
	RunAfterGen bool                 `yaml:"run_after_generate"`
	Overrides   map[string]CrateInfo `yaml:"dependency_overrides"`
}

// DefaultConfig is the configuration used when no incan.yaml sits next to
// the entry file, or when a present file leaves a field unset.
func DefaultConfig() Config {
	return Config{
		OutDir:     "target/incan",
		Edition:    "2021",
		BinaryName: "incan_out",
	}
}

// LoadConfig reads and decodes path if it exists, merging it over
// DefaultConfig; a missing file is not an error. path is typically
// "incan.yaml" next to the project's entry .incn file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("project: reading %s: %w", path, err)
	}
	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg, fmt.Errorf("project: decoding %s: %w", path, err)
	}
	if override.OutDir != "" {
		cfg.OutDir = override.OutDir
	}
	if override.Edition != "" {
		cfg.Edition = override.Edition
	}
	if override.BinaryName != "" {
		cfg.BinaryName = override.BinaryName
	}
	cfg.RunAfterGen = override.RunAfterGen
	if len(override.Overrides) > 0 {
		cfg.Overrides = override.Overrides
	}
	return cfg, nil
}

// applyOverrides replaces a resolved dependency's (version, features) with
// cfg's override, when the project's incan.yaml names one; the crate still
// must have a known-good entry to be importable at all (an override tunes
// the pin, it does not waive the known-good-table requirement).
func applyOverrides(deps []Dependency, overrides map[string]CrateInfo) []Dependency {
	if len(overrides) == 0 {
		return deps
	}
	out := make([]Dependency, len(deps))
	for i, d := range deps {
		out[i] = d
		if o, ok := overrides[d.Name]; ok {
			out[i].Version = o.Version
			out[i].Features = o.Features
		}
	}
	return out
}
