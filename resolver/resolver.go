// Package resolver discovers the `.incn` files that make up a compile,
// parses each one, and orders them so that every module precedes its
// dependents — reporting import cycles as diagnostics rather than aborting
// the process.
package resolver

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/dannys-code-corner/incan/ast"
)

// Resolver finds the contents of an imported module by its dotted import
// path (e.g. "app.models.user"). It is the pluggable boundary between the
// compiler core and wherever source files actually live — normally the
// filesystem, but tests and embedders can supply their own.
type Resolver interface {
	FindModule(importPath string) (SearchResult, error)
}

// SearchResult is what a Resolver hands back for one import path. Exactly
// one of Source or AST is normally set: AST lets a resolver hand back an
// already-parsed module (e.g. a cached one), while Source is read and
// parsed by the caller.
type SearchResult struct {
	Source   io.Reader
	AST      *ast.File
	Filename string
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(string) (SearchResult, error)

func (f ResolverFunc) FindModule(path string) (SearchResult, error) { return f(path) }

// CompositeResolver tries each Resolver in order, returning the first
// successful result.
type CompositeResolver []Resolver

func (c CompositeResolver) FindModule(path string) (SearchResult, error) {
	if len(c) == 0 {
		return SearchResult{}, ErrModuleNotFound
	}
	var firstErr error
	for _, r := range c {
		res, err := r.FindModule(path)
		if err == nil {
			return res, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// ErrModuleNotFound is returned when no configured Resolver can find an
// imported module.
var ErrModuleNotFound = errors.New("resolver: module not found")

// SourceResolver finds `.incn` files under a list of root directories,
// translating a dotted import path into a file path by joining its
// segments and appending the source extension (or looking for a
// `mod.incn` inside a directory of that name, for a package-style import).
type SourceResolver struct {
	Roots []string
}

func (r *SourceResolver) FindModule(importPath string) (SearchResult, error) {
	rel := filepath.Join(filepathSegments(importPath)...)
	candidates := []string{rel + ".incn", filepath.Join(rel, "mod.incn")}

	var lastErr error = ErrModuleNotFound
	for _, root := range r.Roots {
		for _, cand := range candidates {
			full := filepath.Join(root, cand)
			f, err := os.Open(full)
			if err == nil {
				return SearchResult{Source: f, Filename: full}, nil
			}
			if !os.IsNotExist(err) {
				lastErr = err
			}
		}
	}
	return SearchResult{}, lastErr
}

func filepathSegments(importPath string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(importPath); i++ {
		if importPath[i] == '.' {
			segs = append(segs, importPath[start:i])
			start = i + 1
		}
	}
	segs = append(segs, importPath[start:])
	return segs
}
