// Package parser turns a token stream produced by package lexer into an
// ast.File: a recursive-descent parser for declarations and statements,
// with precedence climbing for binary expressions (spec §4.2). It attaches
// full span and comment information to every node via the ast.FileInfo the
// lexer builds up alongside the token stream.
package parser
