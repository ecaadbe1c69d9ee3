package project

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dannys-code-corner/incan/emit"
)

// WriteResult reports what Generate actually touched: Written and
// Unchanged together cover every file Generate considered, so a caller can
// tell a no-op regeneration from one that rewrote the tree. Unchanged is
// the incremental-regeneration fast path spec §4.6 supplements with: a
// source file whose rendered bytes match what is already on disk is left
// untouched rather than rewritten, a natural consequence of §8's emission
// determinism rather than a special code path of its own.
type WriteResult struct {
	Written   []string
	Unchanged []string
}

// BuildStatus reports the outcome of the optional step 4 toolchain
// invocation; Ran is false when cfg.RunAfterGen was not set, in which case
// ExitCode and Output are zero values.
type BuildStatus struct {
	Ran      bool
	ExitCode int
	Output   string
}

// Generate performs spec §4.6's four steps: compute the output directory,
// write the manifest, write the emitted source tree, and optionally invoke
// the target toolchain. result comes from emit.Emit; cfg from LoadConfig.
func Generate(result *emit.Result, cfg Config) (*WriteResult, *BuildStatus, error) {
	lay := newLayout(cfg)

	manifest, err := BuildManifest(result.Externs, cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(lay.manifestPath()), 0o755); err != nil {
		return nil, nil, fmt.Errorf("project: creating output directory: %w", err)
	}

	wr := &WriteResult{}
	if err := writeIfChanged(lay.manifestPath(), manifest.Render(), wr); err != nil {
		return nil, nil, err
	}

	for _, f := range result.Files {
		dest := lay.sourcePath(f.Path)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, nil, fmt.Errorf("project: creating directory for %s: %w", f.Path, err)
		}
		if err := writeIfChanged(dest, f.Text, wr); err != nil {
			return nil, nil, err
		}
	}

	status := &BuildStatus{}
	if cfg.RunAfterGen {
		if err := runBuild(lay, status); err != nil {
			return wr, status, err
		}
	}
	return wr, status, nil
}

// writeIfChanged skips the write, and records dest in wr.Unchanged, when
// dest already holds exactly text.
func writeIfChanged(dest, text string, wr *WriteResult) error {
	if existing, err := os.ReadFile(dest); err == nil && string(existing) == text {
		wr.Unchanged = append(wr.Unchanged, dest)
		return nil
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return fmt.Errorf("project: writing %s: %w", dest, err)
	}
	wr.Written = append(wr.Written, dest)
	return nil
}

// runBuild shells out to the target toolchain (spec §4.6 step 4), capturing
// its exit status and output rather than the output's content being
// interpreted: a nonzero exit is reported through status, not as a Go
// error, since a target-reported compile error is an expected outcome, not
// a failure of generation itself (spec §7's failure-mode split).
func runBuild(lay layout, status *BuildStatus) error {
	cmd := exec.Command("cargo", "build", "--manifest-path", lay.manifestPath())
	out, err := cmd.CombinedOutput()
	status.Ran = true
	status.Output = string(out)
	if exitErr, ok := err.(*exec.ExitError); ok {
		status.ExitCode = exitErr.ExitCode()
		return nil
	}
	if err != nil {
		return fmt.Errorf("project: invoking cargo: %w", err)
	}
	status.ExitCode = 0
	return nil
}
