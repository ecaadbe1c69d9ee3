// Package check implements Incan's two-pass typechecker: a collection pass
// that registers every module's top-level declarations into a symbol table,
// followed by a checking pass that resolves names, infers and verifies
// expression types, and enforces mutability and match-exhaustiveness rules.
//
// The two passes mirror the teacher's link step (first populate a symbol
// table across every file with duplicate-detection, only then resolve type
// references against it) adapted from a single flat protobuf symbol
// namespace to Incan's lexically-scoped one.
package check
