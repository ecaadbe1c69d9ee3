package project

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Dependency is one resolved, pinned manifest entry.
type Dependency struct {
	Name     string
	Version  string
	Features []string
}

// Manifest is the generated project's package manifest: the target
// edition, the generated binary's name, and its resolved dependency set
// (spec §4.6 step 2).
type Manifest struct {
	Edition      string
	BinaryName   string
	Dependencies []Dependency
}

// BuildManifest resolves externs (the deduplicated `rust::crate` names
// lowering collected) against the known-good table, applies cfg's
// per-crate overrides, and fails with an UnknownCrateError listing the
// offending name the first time externs names a crate with no known-good
// entry.
func BuildManifest(externs []string, cfg Config) (*Manifest, error) {
	deps, err := resolveCrates(externs)
	if err != nil {
		return nil, err
	}
	deps = applyOverrides(deps, cfg.Overrides)
	return &Manifest{Edition: cfg.Edition, BinaryName: cfg.BinaryName, Dependencies: deps}, nil
}

// Render produces the manifest's Cargo.toml-format text. Dependencies are
// already sorted by BuildManifest (via resolveCrates), so Render's output
// is stable across runs, matching spec §8's determinism requirement.
func (m *Manifest) Render() string {
	var b strings.Builder
	b.WriteString("[package]\n")
	b.WriteString("name = \"" + m.BinaryName + "\"\n")
	b.WriteString("version = \"0.1.0\"\n")
	b.WriteString("edition = \"" + m.Edition + "\"\n")
	b.WriteString("\n[dependencies]\n")
	sorted := append([]Dependency(nil), m.Dependencies...)
	slices.SortFunc(sorted, func(a, b Dependency) int { return strings.Compare(a.Name, b.Name) })
	for _, d := range sorted {
		if len(d.Features) == 0 {
			b.WriteString(d.Name + " = \"" + d.Version + "\"\n")
			continue
		}
		b.WriteString(d.Name + " = { version = \"" + d.Version + "\", features = [")
		for i, f := range d.Features {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("\"" + f + "\"")
		}
		b.WriteString("] }\n")
	}
	return b.String()
}
