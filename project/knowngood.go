package project

import (
	"embed"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed knowngood.yaml
var knownGoodFile embed.FS

// CrateInfo is one pinned entry of the known-good dependency table: exactly
// one version and feature set, never a range or "latest".
type CrateInfo struct {
	Version  string   `yaml:"version"`
	Features []string `yaml:"features"`
}

var (
	knownGoodOnce  sync.Once
	knownGoodTable map[string]CrateInfo
	knownGoodErr   error
)

// knownGood decodes knowngood.yaml once, at first use, into a read-only
// table — the same single-initialization discipline spec §5 and §9 mandate
// for the keyword/operator registry, applied here to the dependency policy
// table.
func knownGood() (map[string]CrateInfo, error) {
	knownGoodOnce.Do(func() {
		data, err := knownGoodFile.ReadFile("knowngood.yaml")
		if err != nil {
			knownGoodErr = fmt.Errorf("project: reading embedded knowngood.yaml: %w", err)
			return
		}
		table := make(map[string]CrateInfo)
		if err := yaml.Unmarshal(data, &table); err != nil {
			knownGoodErr = fmt.Errorf("project: decoding embedded knowngood.yaml: %w", err)
			return
		}
		knownGoodTable = table
	})
	return knownGoodTable, knownGoodErr
}

// UnknownCrateError reports a `rust::crate` import whose crate name has no
// known-good entry: spec §4.6 treats this as fatal rather than silently
// emitting an unpinned dependency.
type UnknownCrateError struct {
	Crate string
}

func (e *UnknownCrateError) Error() string {
	return fmt.Sprintf("project: %q is not in the known-good dependency table; add a pinned entry before importing it", e.Crate)
}

// resolveCrates looks up each extern crate name, in sorted order for a
// deterministic manifest, failing closed on the first unknown name.
func resolveCrates(externs []string) ([]Dependency, error) {
	table, err := knownGood()
	if err != nil {
		return nil, err
	}
	sorted := append([]string(nil), externs...)
	slices.Sort(sorted)
	deps := make([]Dependency, 0, len(sorted))
	for _, name := range sorted {
		info, ok := table[name]
		if !ok {
			return nil, &UnknownCrateError{Crate: name}
		}
		deps = append(deps, Dependency{Name: name, Version: info.Version, Features: info.Features})
	}
	return deps, nil
}
