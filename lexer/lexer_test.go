package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannys-code-corner/incan/lexer"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/token"
)

func allTokens(t *testing.T, src string) []lexer.Result {
	t.Helper()
	l := lexer.New("test.incn", []byte(src), reporter.NewHandler(nil))
	var out []lexer.Result
	for {
		r := l.Next()
		out = append(out, r)
		if r.Kind == token.EOF {
			return out
		}
	}
}

func kinds(results []lexer.Result) []token.Kind {
	ks := make([]token.Kind, len(results))
	for i, r := range results {
		ks[i] = r.Kind
	}
	return ks
}

func TestLexIdentAndKeyword(t *testing.T) {
	toks := allTokens(t, "def foo\n")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.KEYWORD, toks[0].Kind)
	assert.Equal(t, "def", toks[0].Keyword)
	assert.Equal(t, token.IDENT, toks[1].Kind)
	assert.Equal(t, "foo", toks[1].Text)
}

func TestLexIndentDedent(t *testing.T) {
	src := "def f():\n    pass\nx = 1\n"
	toks := allTokens(t, src)
	ks := kinds(toks)
	assert.Contains(t, ks, token.INDENT)
	assert.Contains(t, ks, token.DEDENT)
}

func TestLexBlankAndCommentLinesSkipped(t *testing.T) {
	src := "x = 1\n\n# a comment\ny = 2\n"
	toks := allTokens(t, src)
	newlineCount := 0
	for _, r := range toks {
		if r.Kind == token.NEWLINE {
			newlineCount++
		}
	}
	assert.Equal(t, 2, newlineCount)
}

func TestLexIntAndFloat(t *testing.T) {
	toks := allTokens(t, "42 3.5\n")
	assert.Equal(t, token.INT, toks[0].Kind)
	assert.EqualValues(t, 42, toks[0].Int)
	assert.Equal(t, token.FLOAT, toks[1].Kind)
	assert.InDelta(t, 3.5, toks[1].Float, 0.0001)
}

func TestLexString(t *testing.T) {
	toks := allTokens(t, `"hello"` + "\n")
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Str)
}

func TestLexParenDepthSuppressesNewline(t *testing.T) {
	src := "f(1,\n  2)\n"
	toks := allTokens(t, src)
	newlineCount := 0
	for _, r := range toks {
		if r.Kind == token.NEWLINE {
			newlineCount++
		}
	}
	assert.Equal(t, 1, newlineCount)
}

func TestLexOperators(t *testing.T) {
	toks := allTokens(t, "a == b and c\n")
	var ops []string
	for _, r := range toks {
		if r.Kind == token.OPERATOR {
			ops = append(ops, r.Text)
		}
	}
	assert.Equal(t, []string{"==", "and"}, ops)
}

func TestLexEOFRepeats(t *testing.T) {
	l := lexer.New("test.incn", []byte("x\n"), reporter.NewHandler(nil))
	for l.Next().Kind != token.EOF {
	}
	r1 := l.Next()
	r2 := l.Next()
	assert.Equal(t, token.EOF, r1.Kind)
	assert.Equal(t, token.EOF, r2.Kind)
}
