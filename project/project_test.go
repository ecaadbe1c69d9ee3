package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/emit"
	"github.com/dannys-code-corner/incan/project"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := project.LoadConfig(filepath.Join(t.TempDir(), "incan.yaml"))
	require.NoError(t, err)
	assert.Equal(t, project.DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out_dir: build/rs\nbinary_name: app\n"), 0o644))

	cfg, err := project.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "build/rs", cfg.OutDir)
	assert.Equal(t, "app", cfg.BinaryName)
	assert.Equal(t, project.DefaultConfig().Edition, cfg.Edition)
}

func TestBuildManifestResolvesKnownCrates(t *testing.T) {
	manifest, err := project.BuildManifest([]string{"serde_json", "anyhow"}, project.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, manifest.Dependencies, 2)

	names := []string{manifest.Dependencies[0].Name, manifest.Dependencies[1].Name}
	assert.ElementsMatch(t, []string{"serde_json", "anyhow"}, names)
}

func TestBuildManifestUnknownCrateFails(t *testing.T) {
	_, err := project.BuildManifest([]string{"not_a_real_crate"}, project.DefaultConfig())
	require.Error(t, err)
	var unknown *project.UnknownCrateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "not_a_real_crate", unknown.Crate)
}

func TestBuildManifestAppliesOverrides(t *testing.T) {
	cfg := project.DefaultConfig()
	cfg.Overrides = map[string]project.CrateInfo{
		"serde_json": {Version: "9.9.9", Features: []string{"preserve_order"}},
	}
	manifest, err := project.BuildManifest([]string{"serde_json"}, cfg)
	require.NoError(t, err)
	require.Len(t, manifest.Dependencies, 1)
	assert.Equal(t, "9.9.9", manifest.Dependencies[0].Version)
	assert.Equal(t, []string{"preserve_order"}, manifest.Dependencies[0].Features)
}

func TestManifestRenderIsSortedAndDeterministic(t *testing.T) {
	manifest, err := project.BuildManifest([]string{"serde_json", "anyhow"}, project.DefaultConfig())
	require.NoError(t, err)

	rendered := manifest.Render()
	assert.Contains(t, rendered, "[package]")
	assert.Contains(t, rendered, "[dependencies]")
	assert.Less(t, strings.Index(rendered, "anyhow"), strings.Index(rendered, "serde_json"))
}

func TestGenerateWritesManifestAndSources(t *testing.T) {
	cfg := project.DefaultConfig()
	cfg.OutDir = filepath.Join(t.TempDir(), "out")

	result := &emit.Result{
		Files:   []emit.Output{{Path: "main.rs", Text: "fn main() {}\n"}},
		Externs: nil,
	}

	wr, status, err := project.Generate(result, cfg)
	require.NoError(t, err)
	require.False(t, status.Ran)
	require.Len(t, wr.Written, 2)

	manifestBytes, err := os.ReadFile(filepath.Join(cfg.OutDir, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifestBytes), "name = \"incan_out\"")

	srcBytes, err := os.ReadFile(filepath.Join(cfg.OutDir, "src", "main.rs"))
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}\n", string(srcBytes))
}

func TestGenerateSkipsUnchangedFiles(t *testing.T) {
	cfg := project.DefaultConfig()
	cfg.OutDir = filepath.Join(t.TempDir(), "out")
	result := &emit.Result{Files: []emit.Output{{Path: "main.rs", Text: "fn main() {}\n"}}}

	_, _, err := project.Generate(result, cfg)
	require.NoError(t, err)

	wr, _, err := project.Generate(result, cfg)
	require.NoError(t, err)
	assert.Empty(t, wr.Written)
	assert.Len(t, wr.Unchanged, 2)
}
