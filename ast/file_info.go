// Package ast defines the syntax tree for Incan source files.
//
// Every node in the tree implements Node; leaf nodes additionally implement
// TerminalNode and everything else implements CompositeNode. The root of the
// tree for a single source file is a *File.
//
// Position information is tracked out-of-line in a *FileInfo, which the
// lexer populates as it scans a file (see FileInfo.AddToken, AddLine). This
// keeps individual AST nodes compact — they carry only a pair of Token
// indices — while still letting any node recover its precise source span on
// demand via FileInfo.NodeInfo.
//
// Comments are not nodes in the tree. Instead they are accumulated by the
// lexer and attributed to the nearest terminal node, exactly as in
// Incan's reference compiler; NodeInfo.LeadingComments/TrailingComments
// recover them for a given node.
package ast

import (
	"fmt"
	"sort"

	"github.com/rivo/uniseg"
)

// FileInfo holds everything about a source file's layout that isn't part of
// the syntax tree proper: line starts, token spans, and comment attribution.
// A lexer builds one of these up token-by-token as it scans.
type FileInfo struct {
	name string
	data []byte

	// lines[i] is the byte offset at which line i+1 (1-indexed) begins.
	// lines[0] is always 0.
	lines []int

	// tokens[i] is the span of the i-th token lexed from this file. The
	// final entry always corresponds to EOF, so even an empty file has one
	// entry. Rune-punctuation tokens are included, same as any other token.
	tokens []tokenSpan

	comments []commentInfo
}

type tokenSpan struct {
	offset int
	length int
}

type commentInfo struct {
	index             int // index into tokens, for the comment's own token
	attributedToIndex int // index into tokens, for the node it decorates
}

// NewFileInfo creates position-tracking state for a freshly opened file.
func NewFileInfo(filename string, contents []byte) *FileInfo {
	return &FileInfo{name: filename, data: contents, lines: []int{0}}
}

// Name returns the file's path as given to NewFileInfo.
func (f *FileInfo) Name() string { return f.name }

// Contents returns the raw bytes of the file.
func (f *FileInfo) Contents() []byte { return f.data }

// AddLine records that a new logical line begins at the given byte offset.
// Offsets must be supplied in increasing order as the lexer advances.
func (f *FileInfo) AddLine(offset int) {
	if offset < 0 || offset > len(f.data) {
		panic(fmt.Sprintf("ast: invalid line offset %d for file of length %d", offset, len(f.data)))
	}
	if last := f.lines[len(f.lines)-1]; offset <= last {
		panic(fmt.Sprintf("ast: line offset %d does not follow previous offset %d", offset, last))
	}
	f.lines = append(f.lines, offset)
}

// AddToken records a lexed token's span and returns a handle to it.
func (f *FileInfo) AddToken(offset, length int) Token {
	if offset < 0 || length < 0 || offset+length > len(f.data) {
		panic(fmt.Sprintf("ast: invalid token span [%d,+%d) for file of length %d", offset, length, len(f.data)))
	}
	id := len(f.tokens)
	if id > 0 {
		prev := f.tokens[id-1]
		if offset < prev.offset+prev.length {
			panic(fmt.Sprintf("ast: token at %d overlaps previous token ending at %d", offset, prev.offset+prev.length))
		}
	}
	f.tokens = append(f.tokens, tokenSpan{offset: offset, length: length})
	return Token(id)
}

// AddComment records that the comment token lexed as `comment` should be
// attributed to `attributedTo` (a leading comment if it precedes that token,
// a trailing one otherwise). Comments must have already been registered via
// AddToken.
func (f *FileInfo) AddComment(comment, attributedTo Token) {
	f.comments = append(f.comments, commentInfo{
		index:             int(comment),
		attributedToIndex: int(attributedTo),
	})
}

// NodeInfo computes the full span (and, transitively, comment attribution)
// for a node, given the Start/End token indices it carries.
func (f *FileInfo) NodeInfo(n Node) NodeInfo {
	return NodeInfo{fileInfo: f, startIndex: int(n.Start()), endIndex: int(n.End())}
}

// TokenInfo is like NodeInfo but for a single, already-resolved Token.
func (f *FileInfo) TokenInfo(t Token) NodeInfo {
	return NodeInfo{fileInfo: f, startIndex: int(t), endIndex: int(t)}
}

func (f *FileInfo) synthetic() bool { return f.lines == nil }

// SourcePos converts a byte offset into this file into a line/column pair.
// Columns count grapheme clusters, not bytes, so a diagnostic caret lands
// under the right character even when the line contains wide or combining
// Unicode (inside a string or f-string literal, most commonly).
func (f *FileInfo) SourcePos(offset int) SourcePos {
	lineIdx := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	lineStart := f.lines[lineIdx]

	col := 1
	rest := f.data[lineStart:offset]
	gr := uniseg.NewGraphemes(string(rest))
	for gr.Next() {
		col++
	}

	return SourcePos{
		Filename: f.name,
		Offset:   offset,
		Line:     lineIdx + 1,
		Col:      col,
	}
}

// Token is an opaque handle to a single lexed token within a FileInfo.
type Token int

// NodeInfo carries enough information to recover a node's source span,
// raw text, and attached comments.
type NodeInfo struct {
	fileInfo             *FileInfo
	startIndex, endIndex int
}

// Start returns the position of the first byte of the node.
func (n NodeInfo) Start() SourcePos {
	if n.fileInfo.synthetic() {
		return UnknownPos(n.fileInfo.name)
	}
	tok := n.fileInfo.tokens[n.startIndex]
	return n.fileInfo.SourcePos(tok.offset)
}

// End returns the position just past the last byte of the node (an
// open-range end, matching Go slicing conventions).
func (n NodeInfo) End() SourcePos {
	if n.fileInfo.synthetic() {
		return UnknownPos(n.fileInfo.name)
	}
	tok := n.fileInfo.tokens[n.endIndex]
	offset := tok.offset + tok.length
	pos := n.fileInfo.SourcePos(offset)
	return pos
}

// RawText returns the exact source bytes spanned by the node.
func (n NodeInfo) RawText() string {
	start := n.fileInfo.tokens[n.startIndex]
	end := n.fileInfo.tokens[n.endIndex]
	return string(n.fileInfo.data[start.offset : end.offset+end.length])
}

// LeadingComments returns comments attributed to this node's first token
// that appear before it in the source.
func (n NodeInfo) LeadingComments() []Comment {
	var out []Comment
	for _, c := range n.fileInfo.comments {
		if c.attributedToIndex == n.startIndex && c.index < n.startIndex {
			out = append(out, Comment{fileInfo: n.fileInfo, info: c})
		}
	}
	return out
}

// TrailingComments returns comments attributed to this node's last token
// that appear after it in the source.
func (n NodeInfo) TrailingComments() []Comment {
	var out []Comment
	for _, c := range n.fileInfo.comments {
		if c.attributedToIndex == n.endIndex && c.index > n.endIndex {
			out = append(out, Comment{fileInfo: n.fileInfo, info: c})
		}
	}
	return out
}

// SourcePos identifies a single location in an Incan source file.
type SourcePos struct {
	Filename  string
	Line, Col int
	Offset    int
}

func (pos SourcePos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}

// UnknownPos is used for synthetic nodes that have no real source location
// (builtins, derived code) — only the originating file name is known.
func UnknownPos(filename string) SourcePos {
	return SourcePos{Filename: filename}
}

// Comment is a single `#`-style comment lexed from a source file.
type Comment struct {
	fileInfo *FileInfo
	info     commentInfo
}

// RawText returns the comment's exact source text, including its `#` marker.
func (c Comment) RawText() string {
	tok := c.fileInfo.tokens[c.info.index]
	return string(c.fileInfo.data[tok.offset : tok.offset+tok.length])
}

// Start returns the comment's position in its file.
func (c Comment) Start() SourcePos {
	tok := c.fileInfo.tokens[c.info.index]
	return c.fileInfo.SourcePos(tok.offset)
}
