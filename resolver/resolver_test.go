package resolver_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/resolver"
)

func TestImportPath(t *testing.T) {
	assert.Equal(t, "app.models.user", resolver.ImportPath(filepath.FromSlash("app/models/user.incn")))
	assert.Equal(t, "app.models", resolver.ImportPath(filepath.FromSlash("app/models/mod.incn")))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.incn"), []byte("pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "models", "user.incn"), []byte("pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignore me"), 0o644))

	paths, err := resolver.Discover(root)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	assert.Contains(t, paths, "main.incn")
	assert.Contains(t, paths, filepath.FromSlash("app/models/user.incn"))
}

func TestSourceResolverFindsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "models.incn"), []byte("pass\n"), 0o644))

	r := &resolver.SourceResolver{Roots: []string{root}}
	res, err := r.FindModule("app.models")
	require.NoError(t, err)
	defer res.Source.(io.Closer).Close()
	data, err := io.ReadAll(res.Source)
	require.NoError(t, err)
	assert.Equal(t, "pass\n", string(data))
}

func TestSourceResolverFindsModDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "mod.incn"), []byte("pass\n"), 0o644))

	r := &resolver.SourceResolver{Roots: []string{root}}
	res, err := r.FindModule("app")
	require.NoError(t, err)
	defer res.Source.(io.Closer).Close()
}

func TestSourceResolverNotFound(t *testing.T) {
	r := &resolver.SourceResolver{Roots: []string{t.TempDir()}}
	_, err := r.FindModule("missing")
	assert.ErrorIs(t, err, resolver.ErrModuleNotFound)
}

func TestCompositeResolverTriesEach(t *testing.T) {
	calls := 0
	first := resolver.ResolverFunc(func(string) (resolver.SearchResult, error) {
		calls++
		return resolver.SearchResult{}, resolver.ErrModuleNotFound
	})
	second := resolver.ResolverFunc(func(string) (resolver.SearchResult, error) {
		calls++
		return resolver.SearchResult{Filename: "found"}, nil
	})

	res, err := resolver.CompositeResolver{first, second}.FindModule("anything")
	require.NoError(t, err)
	assert.Equal(t, "found", res.Filename)
	assert.Equal(t, 2, calls)
}

func TestCompositeResolverEmpty(t *testing.T) {
	_, err := resolver.CompositeResolver(nil).FindModule("x")
	assert.ErrorIs(t, err, resolver.ErrModuleNotFound)
}
