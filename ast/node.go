package ast

// Node is implemented by every element of the syntax tree. Start and End
// return Token handles (not positions) so that nodes stay small; callers
// recover real positions via FileInfo.NodeInfo.
type Node interface {
	Start() Token
	End() Token
}

// TerminalNode is a leaf of the tree: a single lexed token, optionally
// carrying a decoded literal value.
type TerminalNode interface {
	Node
	Token() Token
}

// CompositeNode is any non-leaf node; Children exists mainly so generic
// tree-walking utilities (e.g. the lowering pass's pre-order walk) don't
// need a type switch over every node kind.
type CompositeNode interface {
	Node
	Children() []Node
}

// terminalNode is the common embeddable implementation of TerminalNode.
type terminalNode Token

func (t terminalNode) Start() Token { return Token(t) }
func (t terminalNode) End() Token   { return Token(t) }
func (t terminalNode) Token() Token { return Token(t) }

// RuneNode represents a single punctuation/operator character lexed as its
// own token (commas, colons, brackets, and so on).
type RuneNode struct {
	terminalNode
	Rune rune
}

// NewRuneNode creates a RuneNode for the rune lexed at tok.
func NewRuneNode(r rune, tok Token) *RuneNode {
	return &RuneNode{terminalNode: terminalNode(tok), Rune: r}
}

// KeywordNode represents a reserved word, e.g. `def`, `let`, `match`.
type KeywordNode struct {
	terminalNode
	Keyword string
}

// NewKeywordNode creates a KeywordNode for the keyword lexed at tok.
func NewKeywordNode(keyword string, tok Token) *KeywordNode {
	return &KeywordNode{terminalNode: terminalNode(tok), Keyword: keyword}
}

// IdentNode represents a plain identifier.
type IdentNode struct {
	terminalNode
	Name string
}

// NewIdentNode creates an IdentNode for the identifier lexed at tok.
func NewIdentNode(name string, tok Token) *IdentNode {
	return &IdentNode{terminalNode: terminalNode(tok), Name: name}
}

func (n *IdentNode) exprNode() {}

// IntLiteralNode represents a decimal, hex, octal, or binary integer
// literal; underscores have already been stripped by the lexer.
type IntLiteralNode struct {
	terminalNode
	Value uint64
}

func NewIntLiteralNode(v uint64, tok Token) *IntLiteralNode {
	return &IntLiteralNode{terminalNode: terminalNode(tok), Value: v}
}
func (n *IntLiteralNode) exprNode() {}

// FloatLiteralNode represents a floating point literal.
type FloatLiteralNode struct {
	terminalNode
	Value float64
}

func NewFloatLiteralNode(v float64, tok Token) *FloatLiteralNode {
	return &FloatLiteralNode{terminalNode: terminalNode(tok), Value: v}
}
func (n *FloatLiteralNode) exprNode() {}

// BoolLiteralNode represents `true`/`false` (and their `True`/`False` alias
// spellings, which the lexer canonicalizes before constructing this node).
type BoolLiteralNode struct {
	terminalNode
	Value bool
}

func NewBoolLiteralNode(v bool, tok Token) *BoolLiteralNode {
	return &BoolLiteralNode{terminalNode: terminalNode(tok), Value: v}
}
func (n *BoolLiteralNode) exprNode() {}

// StringLiteralNode represents a single- or triple-quoted string literal
// with escapes already decoded.
type StringLiteralNode struct {
	terminalNode
	Value string
}

func NewStringLiteralNode(v string, tok Token) *StringLiteralNode {
	return &StringLiteralNode{terminalNode: terminalNode(tok), Value: v}
}
func (n *StringLiteralNode) exprNode() {}

// BytesLiteralNode represents a `b"..."` literal; Value holds the decoded,
// ASCII-validated bytes.
type BytesLiteralNode struct {
	terminalNode
	Value []byte
}

func NewBytesLiteralNode(v []byte, tok Token) *BytesLiteralNode {
	return &BytesLiteralNode{terminalNode: terminalNode(tok), Value: v}
}
func (n *BytesLiteralNode) exprNode() {}
