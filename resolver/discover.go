package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover walks root looking for every `.incn` source file, using a
// doublestar glob so nested package directories are found without a
// hand-rolled recursive walk. The returned paths are root-relative, with
// OS separators, suitable for passing to ast.NewFileInfo as a display name.
func Discover(root string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.incn")
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.FromSlash(m)
	}
	return paths, nil
}

// ImportPath converts a root-relative file path (as returned by Discover)
// into the dotted import path other modules would use to reference it:
// `app/models/user.incn` becomes `app.models.user`, and a directory's
// `mod.incn` becomes the directory's own dotted path.
func ImportPath(relPath string) string {
	rel := filepath.ToSlash(relPath)
	rel = strings.TrimSuffix(rel, ".incn")
	rel = strings.TrimSuffix(rel, "/mod")
	return strings.ReplaceAll(rel, "/", ".")
}
