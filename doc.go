// Package incan provides the entry point for the Incan compiler: it turns a
// tree of `.incn` source files into a generated, buildable Rust project.
//
// Compilation involves six steps for a project:
//  1. Discover every source file under the project root and parse it.
//     Also see: resolver.Discover, parser.Parse
//  2. Order modules so every module precedes its dependents, reporting
//     import cycles as diagnostics rather than aborting.
//     Also see: resolver.Order
//  3. Collect each module's top-level declarations into a symbol table.
//     Also see: check.Collect
//  4. Typecheck every function and method body.
//     Also see: check.Check
//  5. Lower the checked AST into the target-independent IR, resolving the
//     ownership, dispatch, and conversion decisions checking leaves open.
//     Also see: lower.Lower
//  6. Emit Rust source for the IR and generate a buildable project around
//     it.
//     Also see: emit.Emit, project.Generate
//
// Unlike a compiler built to process many independent inputs concurrently,
// Compiler runs its pipeline on a single goroutine: a compile is one pass
// over one dependency-ordered module list, and nothing about the pipeline
// benefits from parallelizing across modules the way compiling unrelated
// descriptor files would. See the reporter package doc for the consequence
// this has for Handler's lack of internal locking.
//
// # Resolvers
//
// A resolver.Resolver is how the compiler locates the source of an imported
// module. The default, resolver.SourceResolver, loads `.incn` files from one
// or more root directories on disk; tests and embedders can supply their
// own to serve modules from memory instead.
//
// # Compiler
//
// A Compiler accepts a project root directory and produces a generated
// Rust project on disk. Only Root is required:
//
//	compiler := incan.Compiler{Root: "./myproject"}
//	result, err := compiler.Compile(context.Background())
//
// This minimal Compiler looks for `.incn` files under Root, fails fast at
// the first diagnostic, and writes the generated project to the default
// output directory (see project.DefaultConfig). All of this can be
// customized by setting other fields.
package incan
