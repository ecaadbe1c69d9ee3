package project

import "path/filepath"

// layout computes the filesystem locations of a generated project's pieces,
// rooted at cfg.OutDir (spec §4.6 step 1's "reserved subtree of the
// workspace" default).
type layout struct {
	root string
}

func newLayout(cfg Config) layout {
	return layout{root: cfg.OutDir}
}

func (l layout) manifestPath() string {
	return filepath.Join(l.root, "Cargo.toml")
}

func (l layout) sourcePath(relPath string) string {
	return filepath.Join(l.root, "src", relPath)
}
