package incan

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dannys-code-corner/incan/check"
	"github.com/dannys-code-corner/incan/emit"
	"github.com/dannys-code-corner/incan/lower"
	"github.com/dannys-code-corner/incan/parser"
	"github.com/dannys-code-corner/incan/project"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
)

// Compiler drives a whole compile: discovering source, ordering it,
// checking it, lowering it, emitting target source, and generating a
// buildable project around that source.
type Compiler struct {
	// Root is the project directory to search for `.incn` source files.
	// Required unless Resolver and Files are both set.
	Root string

	// Resolver locates an imported module's source by its dotted import
	// path. If unset, a resolver.SourceResolver rooted at Root is used.
	Resolver resolver.Resolver

	// Files restricts discovery to this explicit set of root-relative
	// paths rather than walking the whole of Root for every `.incn` file.
	// If empty, every file resolver.Discover finds under Root is compiled.
	Files []string

	// ConfigPath is where to look for the project's incan.yaml. If unset,
	// "incan.yaml" directly under Root is used. A missing file is not an
	// error; see project.LoadConfig.
	ConfigPath string

	// Reporter is a custom error and warning reporter. If unset, a
	// default reporter aborts the compile at the first diagnostic and
	// ignores warnings.
	Reporter reporter.Reporter
}

// Result is everything a successful compile produced.
type Result struct {
	Emitted *emit.Result
	Written *project.WriteResult
	Build   *project.BuildStatus
}

// Compile runs the whole pipeline: discover and parse source, order
// modules, collect and check declarations, lower to IR, emit target
// source, and generate a project from it. ctx is checked for cancellation
// between pipeline stages; the pipeline itself runs on the calling
// goroutine (see the package doc).
func (c *Compiler) Compile(ctx context.Context) (*Result, error) {
	handler := reporter.NewHandler(c.Reporter)

	modules, err := c.discoverAndParse(handler)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ordered, err := resolver.Order(modules, handler)
	if err != nil {
		return nil, err
	}

	program, err := check.Collect(ordered, handler)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := check.Check(program, handler)
	if err != nil {
		return nil, err
	}
	if err := handler.Error(); err != nil {
		return nil, err
	}

	irProgram, err := lower.Lower(program, info, handler)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emitted, err := emit.Emit(irProgram)
	if err != nil {
		return nil, fmt.Errorf("incan: emitting target source: %w", err)
	}

	cfg, err := project.LoadConfig(c.configPath())
	if err != nil {
		return nil, err
	}

	written, build, err := project.Generate(emitted, cfg)
	if err != nil {
		return nil, fmt.Errorf("incan: generating project: %w", err)
	}

	return &Result{Emitted: emitted, Written: written, Build: build}, nil
}

func (c *Compiler) configPath() string {
	if c.ConfigPath != "" {
		return c.ConfigPath
	}
	return filepath.Join(c.Root, "incan.yaml")
}

// discoverAndParse finds every source file (or, if c.Files is set, exactly
// those files), parses each one, and wraps it in a resolver.Module keyed
// by its dotted import path — the form resolver.Order, check.Collect, and
// every later pass expect.
func (c *Compiler) discoverAndParse(handler *reporter.Handler) ([]resolver.Module, error) {
	paths := c.Files
	if len(paths) == 0 {
		discovered, err := resolver.Discover(c.Root)
		if err != nil {
			return nil, fmt.Errorf("incan: discovering source files under %q: %w", c.Root, err)
		}
		paths = discovered
	}

	res := c.Resolver
	if res == nil {
		res = &resolver.SourceResolver{Roots: []string{c.Root}}
	}

	modules := make([]resolver.Module, 0, len(paths))
	for _, relPath := range paths {
		importPath := resolver.ImportPath(relPath)

		sr, err := res.FindModule(importPath)
		if err != nil {
			return nil, fmt.Errorf("incan: resolving %q: %w", importPath, err)
		}

		if sr.AST != nil {
			modules = append(modules, resolver.Module{Path: importPath, File: sr.AST})
			continue
		}

		contents, err := io.ReadAll(sr.Source)
		if c, ok := sr.Source.(io.Closer); ok {
			_ = c.Close()
		}
		if err != nil {
			return nil, fmt.Errorf("incan: reading %q: %w", importPath, err)
		}

		name := sr.Filename
		if name == "" {
			name = relPath
		}
		file, err := parser.Parse(name, contents, handler)
		if err != nil {
			return nil, err
		}
		modules = append(modules, resolver.Module{Path: importPath, File: file})
	}
	return modules, nil
}
