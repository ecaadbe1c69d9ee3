package parser

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/token"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseIfExpr()
}

// parseIfExpr handles the postfix conditional `then if cond else els`,
// which binds looser than everything else in the grammar.
func (p *Parser) parseIfExpr() ast.Expr {
	then := p.parseBinary(0)
	if p.atKeyword("if") {
		p.advance()
		cond := p.parseBinary(0)
		p.expectKeyword("else")
		els := p.parseIfExpr()
		return ast.NewIfExpr(then, cond, els)
	}
	return then
}

// parseBinary implements precedence climbing over the registry in package
// token; minPrec is the lowest precedence this call is willing to consume.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnaryExpr()
	for {
		opText, opTok, ok := p.peekBinaryOp()
		if !ok {
			return left
		}
		info, ok := token.LookupOperator(opText)
		if !ok || info.Prec < minPrec {
			return left
		}
		p.advance()
		nextMin := info.Prec + 1
		if info.Assoc == token.RightAssoc || info.Assoc == token.ChainAssoc {
			nextMin = info.Prec
		}
		right := p.parseBinary(nextMin)
		if opText == ".." || opText == "..=" {
			left = ast.NewRangeExpr(left, opText == "..=", right)
		} else {
			left = ast.NewBinaryExpr(left, opText, opTok, right)
		}
	}
}

func (p *Parser) peekBinaryOp() (text string, tok ast.Token, ok bool) {
	if p.cur.Kind == token.OPERATOR {
		return p.cur.Text, p.cur.Tok, true
	}
	return "", 0, false
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.atKeyword("not") {
		tok := p.advance().Tok
		operand := p.parseUnaryExpr()
		return ast.NewUnaryExpr("not", tok, operand)
	}
	if p.atOp("-") {
		tok := p.advance().Tok
		operand := p.parseUnaryExpr()
		return ast.NewUnaryExpr("-", tok, operand)
	}
	if p.atKeyword("await") {
		tok := p.advance().Tok
		operand := p.parseUnaryExpr()
		return ast.NewAwaitExpr(tok, operand)
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() ast.Expr {
	e := p.parsePrimaryExpr()
	for {
		switch {
		case p.atPunct("."):
			p.advance()
			field := p.expectIdent()
			if p.atPunct("(") {
				e = p.parseMethodCall(e, field)
			} else {
				e = ast.NewFieldAccessExpr(e, field)
			}
		case p.atPunct("("):
			e = p.parseCall(e)
		case p.atPunct("["):
			e = p.parseIndexOrSlice(e)
		case p.atPunct("?"):
			tok := p.advance().Tok
			e = ast.NewTryExpr(e, tok)
		default:
			return e
		}
	}
}

func (p *Parser) parseCall(fn ast.Expr) *ast.CallExpr {
	p.advance() // '('
	args, kwargs := p.parseArgs()
	close := p.expectPunct(")")
	return ast.NewCallExpr(fn, args, kwargs, close)
}

func (p *Parser) parseMethodCall(recv ast.Expr, method *ast.IdentNode) *ast.MethodCallExpr {
	p.advance() // '('
	args, kwargs := p.parseArgs()
	close := p.expectPunct(")")
	return ast.NewMethodCallExpr(recv, method, args, kwargs, close)
}

func (p *Parser) parseArgs() ([]ast.Expr, []ast.KwArg) {
	var args []ast.Expr
	var kwargs []ast.KwArg
	for !p.atPunct(")") && !p.atEOF() {
		if p.cur.Kind == token.IDENT && p.peekNext().Kind == token.PUNCT && p.peekNext().Text == ":" {
			name := p.expectIdent()
			p.advance() // ':'
			kwargs = append(kwargs, ast.KwArg{Name: name, Value: p.parseExpr()})
		} else {
			args = append(args, p.parseExpr())
		}
		if p.atPunct(",") {
			p.advance()
		}
	}
	return args, kwargs
}

func (p *Parser) parseIndexOrSlice(recv ast.Expr) ast.Expr {
	p.advance() // '['
	var low, high, step ast.Expr
	if !p.atPunct(":") {
		low = p.parseExpr()
	}
	if p.atPunct(":") {
		p.advance()
		if !p.atPunct(":") && !p.atPunct("]") {
			high = p.parseExpr()
		}
		if p.atPunct(":") {
			p.advance()
			if !p.atPunct("]") {
				step = p.parseExpr()
			}
		}
		close := p.expectPunct("]")
		return ast.NewSliceExpr(recv, low, high, step, close)
	}
	close := p.expectPunct("]")
	return ast.NewIndexExpr(recv, low, close)
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch {
	case p.cur.Kind == token.INT:
		r := p.advance()
		return ast.NewIntLiteralNode(r.Int, r.Tok)
	case p.cur.Kind == token.FLOAT:
		r := p.advance()
		return ast.NewFloatLiteralNode(r.Float, r.Tok)
	case p.cur.Kind == token.STRING && !p.cur.IsFString:
		r := p.advance()
		return ast.NewStringLiteralNode(r.Str, r.Tok)
	case p.cur.Kind == token.STRING && p.cur.IsFString:
		return p.assembleFString(p.advance())
	case p.cur.Kind == token.BYTES:
		r := p.advance()
		return ast.NewBytesLiteralNode(r.Bytes, r.Tok)
	case p.atKeyword("true") || p.atKeyword("false"):
		r := p.advance()
		return ast.NewBoolLiteralNode(r.Bool, r.Tok)
	case p.cur.Kind == token.IDENT:
		name := p.expectIdent()
		if p.atPunct("{") && p.identLooksLikeConstructor(name) {
			return p.parseStructConstructor(name)
		}
		return name
	case p.atPunct("("):
		return p.parseParenOrTuple()
	case p.atPunct("["):
		return p.parseListOrComprehension()
	case p.atPunct("{"):
		return p.parseSetOrDict()
	case p.atKeyword("match"):
		return p.parseMatchExpr()
	default:
		p.errorf("expected an expression, found %s %q", p.cur.Kind, p.cur.Text)
		tok := p.advance().Tok
		return ast.NewIdentNode("<error>", tok)
	}
}

// identLooksLikeConstructor disambiguates `Name { ... }` struct construction
// from a bare identifier followed by an unrelated `{` (e.g. the start of a
// following block in degenerate input); capitalized names are treated as
// type names by Incan convention.
func (p *Parser) identLooksLikeConstructor(name *ast.IdentNode) bool {
	return len(name.Name) > 0 && name.Name[0] >= 'A' && name.Name[0] <= 'Z'
}

func (p *Parser) parseStructConstructor(name *ast.IdentNode) *ast.StructConstructorExpr {
	p.advance() // '{'
	var fields []ast.StructFieldInit
	for !p.atPunct("}") && !p.atEOF() {
		fname := p.expectIdent()
		p.expectPunct(":")
		fields = append(fields, ast.StructFieldInit{Name: fname, Value: p.parseExpr()})
		if p.atPunct(",") {
			p.advance()
		}
	}
	close := p.expectPunct("}")
	return ast.NewStructConstructorExpr(name, fields, close)
}

// parseParenOrTuple handles `(e)` (a grouped expression, not a tuple),
// `(e,)` / `(e1, e2, ...)` (tuples), and `(params) => expr` arrow closures.
func (p *Parser) parseParenOrTuple() ast.Expr {
	open := p.advance().Tok
	if p.atPunct(")") {
		close := p.advance().Tok
		if p.atPunct("=>") {
			p.advance()
			return ast.NewArrowClosureExpr(open, nil, p.parseExpr())
		}
		return ast.NewTupleExpr(open, nil, close)
	}

	first := p.parseExpr()
	if p.atPunct(",") {
		elems := []ast.Expr{first}
		for p.atPunct(",") {
			p.advance()
			if p.atPunct(")") {
				break
			}
			elems = append(elems, p.parseExpr())
		}
		close := p.expectPunct(")")
		return ast.NewTupleExpr(open, elems, close)
	}
	p.expectPunct(")")
	if p.atPunct("=>") {
		// `(name) => expr` where `first` turned out to be a bare identifier
		// parsed as an expression; only a single untyped param is supported
		// in this shorthand.
		if ident, ok := first.(*ast.IdentNode); ok {
			p.advance()
			return ast.NewArrowClosureExpr(open, []*ast.Param{{Name: ident}}, p.parseExpr())
		}
	}
	return first
}

func (p *Parser) parseListOrComprehension() ast.Expr {
	open := p.advance().Tok
	if p.atPunct("]") {
		close := p.advance().Tok
		return ast.NewListExpr(open, nil, close)
	}
	first := p.parseExpr()
	if p.atKeyword("for") {
		return p.parseComprehensionTail(ast.ListComprehension, open, first, nil, nil)
	}
	elems := []ast.Expr{first}
	for p.atPunct(",") {
		p.advance()
		if p.atPunct("]") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	close := p.expectPunct("]")
	return ast.NewListExpr(open, elems, close)
}

func (p *Parser) parseSetOrDict() ast.Expr {
	open := p.advance().Tok
	if p.atPunct("}") {
		close := p.advance().Tok
		return ast.NewDictExpr(open, nil, close)
	}
	firstKey := p.parseExpr()
	if p.atPunct(":") {
		p.advance()
		firstVal := p.parseExpr()
		if p.atKeyword("for") {
			return p.parseComprehensionTail(ast.DictComprehension, open, nil, firstKey, firstVal)
		}
		entries := []ast.DictEntry{{Key: firstKey, Value: firstVal}}
		for p.atPunct(",") {
			p.advance()
			if p.atPunct("}") {
				break
			}
			k := p.parseExpr()
			p.expectPunct(":")
			v := p.parseExpr()
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		close := p.expectPunct("}")
		return ast.NewDictExpr(open, entries, close)
	}
	if p.atKeyword("for") {
		return p.parseComprehensionTail(ast.SetComprehension, open, firstKey, nil, nil)
	}
	elems := []ast.Expr{firstKey}
	for p.atPunct(",") {
		p.advance()
		if p.atPunct("}") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	close := p.expectPunct("}")
	return ast.NewSetExpr(open, elems, close)
}

func (p *Parser) parseComprehensionTail(kind ast.ComprehensionKind, open ast.Token, elem, key, val ast.Expr) *ast.ComprehensionExpr {
	p.expectKeyword("for")
	v := p.expectIdent()
	p.expectKeyword("in")
	iter := p.parseExpr()
	var cond ast.Expr
	if p.atKeyword("if") {
		p.advance()
		cond = p.parseExpr()
	}
	closeText := "]"
	if kind != ast.ListComprehension {
		closeText = "}"
	}
	close := p.expectPunct(closeText)
	return ast.NewComprehensionExpr(kind, open, elem, key, val, v, iter, cond, close)
}

func (p *Parser) parseMatchExpr() *ast.MatchExpr {
	kw := p.advance().Tok
	scrutinee := p.parseExpr()
	p.expectPunct(":")
	if p.cur.Kind == token.NEWLINE {
		p.advance()
	}
	p.expectPunctOrIndent()
	var arms []*ast.MatchArm
	for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		p.expectKeyword("case")
		pattern := p.parsePattern()
		var guard ast.Expr
		if p.atKeyword("if") {
			p.advance()
			guard = p.parseExpr()
		}
		p.expectPunct("=>")
		body := p.parseExpr()
		arms = append(arms, ast.NewMatchArm(pattern, guard, nil, body, body.End()))
		p.skipNewlines()
	}
	end := p.consumeDedent()
	return ast.NewMatchExpr(kw, scrutinee, arms, end)
}
