package parser

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/token"
)

func (p *Parser) parseDecls() []ast.Decl {
	var decls []ast.Decl
	p.skipNewlines()
	for !p.atEOF() {
		decls = append(decls, p.parseDecl())
		p.skipNewlines()
	}
	return decls
}

func (p *Parser) parseDecl() ast.Decl {
	decorators := p.parseDecorators()

	switch {
	case p.atKeyword("async"):
		start := p.advance().Tok
		p.expectKeyword("def")
		return p.parseFuncDeclAfterKeyword(start, decorators, true)
	case p.atKeyword("def"):
		start := p.advance().Tok
		return p.parseFuncDeclAfterKeyword(start, decorators, false)
	case p.atKeyword("model"):
		return p.parseModelDecl(decorators)
	case p.atKeyword("class"):
		return p.parseClassDecl(decorators)
	case p.atKeyword("trait"):
		return p.parseTraitDecl(decorators)
	case p.atKeyword("enum"):
		return p.parseEnumDecl(decorators)
	case p.atKeyword("newtype"):
		return p.parseNewtypeDecl(decorators)
	case p.atKeyword("const"):
		return p.parseConstDecl()
	case p.atKeyword("type"):
		return p.parseTypeAliasDecl()
	case p.atKeyword("import"):
		return p.parseImportDecl()
	case p.atKeyword("from"):
		return p.parseImportFromDecl()
	case p.atKeyword("pub"):
		// `pub` prefixes any of the declarations above; re-enter parseDecl
		// for the rest and mark whichever concrete node comes back.
		p.advance()
		return markPub(p.parseDecl())
	default:
		p.errorf("expected a top-level declaration, found %s %q", p.cur.Kind, p.cur.Text)
		p.advance()
		return ast.NewConstDecl(p.cur.Tok, ast.NewIdentNode("<error>", p.cur.Tok), nil, ast.NewIdentNode("<error>", p.cur.Tok))
	}
}

// markPub flags d as publicly visible. Only model/class/enum/newtype/const
// declarations carry a Pub bit; `pub` on anything else (a function, a type
// alias) is accepted by the grammar but has no visibility effect to record.
func markPub(d ast.Decl) ast.Decl {
	switch d := d.(type) {
	case *ast.ModelDecl:
		d.Pub = true
	case *ast.ClassDecl:
		d.Pub = true
	case *ast.EnumDecl:
		d.Pub = true
	case *ast.NewtypeDecl:
		d.Pub = true
	case *ast.ConstDecl:
		d.Pub = true
	}
	return d
}

func (p *Parser) parseDecorators() []*ast.Decorator {
	var decorators []*ast.Decorator
	for p.atPunct("@") {
		at := p.advance().Tok
		name := p.expectIdent()
		var args []ast.DecoratorArg
		var close ast.Token
		if p.atPunct("(") {
			p.advance()
			for !p.atPunct(")") && !p.atEOF() {
				args = append(args, p.parseDecoratorArg())
				if p.atPunct(",") {
					p.advance()
				}
			}
			close = p.expectPunct(")")
		}
		decorators = append(decorators, ast.NewDecorator(at, name, args, close))
		p.skipNewlines()
	}
	return decorators
}

func (p *Parser) parseDecoratorArg() ast.DecoratorArg {
	if p.cur.Kind == token.IDENT && p.peekNext().Kind == token.PUNCT && p.peekNext().Text == ":" {
		name := p.expectIdent()
		p.advance() // ':'
		return ast.DecoratorArg{Name: name, Value: p.parseExpr()}
	}
	return ast.DecoratorArg{Value: p.parseExpr()}
}

func (p *Parser) parseFuncDeclAfterKeyword(start ast.Token, decorators []*ast.Decorator, async bool) *ast.FuncDecl {
	name := p.expectIdent()
	p.expectPunct("(")
	var recv *ast.Param
	var params []*ast.Param
	first := true
	for !p.atPunct(")") && !p.atEOF() {
		if !first {
			p.expectPunct(",")
		}
		first = false
		if recv == nil && len(params) == 0 && p.atKeyword("self") {
			p.advance()
			recv = &ast.Param{Name: ast.NewIdentNode("self", p.cur.Tok)}
			continue
		}
		if recv == nil && len(params) == 0 && p.atKeyword("mut") && p.peekNext().Kind == token.KEYWORD && p.peekNext().Keyword == "self" {
			p.advance()
			p.advance()
			recv = &ast.Param{Name: ast.NewIdentNode("self", p.cur.Tok), Mutable: true}
			continue
		}
		params = append(params, p.parseParam())
	}
	p.expectPunct(")")
	var result ast.TypeExpr
	if p.atPunct("->") {
		p.advance()
		result = p.parseType()
	}
	p.expectPunct(":")
	body, end := p.parseBlock()
	return ast.NewFuncDecl(start, decorators, async, name, recv, params, result, body, end)
}

func (p *Parser) parseParam() *ast.Param {
	name := p.expectIdent()
	p.expectPunct(":")
	typ := p.parseType()
	var def ast.Expr
	if p.atPunct("=") {
		p.advance()
		def = p.parseExpr()
	}
	return &ast.Param{Name: name, Type: typ, Default: def}
}

func (p *Parser) parseFieldList() []ast.FieldDecl {
	var fields []ast.FieldDecl
	for p.cur.Kind == token.IDENT {
		name := p.expectIdent()
		p.expectPunct(":")
		typ := p.parseType()
		fields = append(fields, ast.FieldDecl{Name: name, Type: typ})
		p.skipNewlines()
	}
	return fields
}

func (p *Parser) parseModelDecl(decorators []*ast.Decorator) *ast.ModelDecl {
	start := p.expectKeyword("model")
	name := p.expectIdent()
	p.expectPunct(":")
	p.advance() // NEWLINE
	p.expectPunctOrIndent()
	fields := p.parseFieldList()
	end := p.consumeDedent()
	return ast.NewModelDecl(start, decorators, name, fields, end)
}

// expectPunctOrIndent consumes the INDENT that opens a field/method block;
// it exists only to give a clearer error than the generic expectPunct when
// the block is missing.
func (p *Parser) expectPunctOrIndent() {
	if p.cur.Kind == token.INDENT {
		p.advance()
		return
	}
	p.errorf("expected an indented block")
}

func (p *Parser) consumeDedent() ast.Token {
	if p.cur.Kind == token.DEDENT {
		return p.advance().Tok
	}
	return p.cur.Tok
}

func (p *Parser) parseClassDecl(decorators []*ast.Decorator) *ast.ClassDecl {
	start := p.expectKeyword("class")
	name := p.expectIdent()
	var bases []*ast.IdentNode
	if p.atPunct("(") {
		p.advance()
		for !p.atPunct(")") && !p.atEOF() {
			bases = append(bases, p.expectIdent())
			if p.atPunct(",") {
				p.advance()
			}
		}
		p.expectPunct(")")
	}
	p.expectPunct(":")
	p.advance()
	p.expectPunctOrIndent()

	var fields []ast.FieldDecl
	var methods []*ast.FuncDecl
	for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		if p.atPunct("@") || p.atKeyword("def") || p.atKeyword("async") {
			d := p.parseDecl()
			if fn, ok := d.(*ast.FuncDecl); ok {
				methods = append(methods, fn)
			}
			continue
		}
		fieldName := p.expectIdent()
		p.expectPunct(":")
		fieldType := p.parseType()
		fields = append(fields, ast.FieldDecl{Name: fieldName, Type: fieldType})
		p.skipNewlines()
	}
	end := p.consumeDedent()
	return ast.NewClassDecl(start, decorators, name, bases, fields, methods, end)
}

func (p *Parser) parseTraitDecl(decorators []*ast.Decorator) *ast.TraitDecl {
	start := p.expectKeyword("trait")
	name := p.expectIdent()
	p.expectPunct(":")
	p.advance()
	p.expectPunctOrIndent()

	var requires []ast.FieldDecl
	var methods []ast.TraitMethod
	for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		if p.atPunct("@") {
			p.advance()
			req := p.expectIdent()
			if req.Name == "requires" {
				p.expectPunct("(")
				fieldName := p.expectIdent()
				p.expectPunct(":")
				fieldType := p.parseType()
				requires = append(requires, ast.FieldDecl{Name: fieldName, Type: fieldType})
				p.expectPunct(")")
			}
			p.skipNewlines()
			continue
		}
		p.expectKeyword("def")
		mname := p.expectIdent()
		p.expectPunct("(")
		if p.atKeyword("self") || (p.atKeyword("mut") && p.peekNext().Keyword == "self") {
			p.advance()
			if p.atKeyword("self") {
				p.advance()
			}
		}
		var params []*ast.Param
		for p.atPunct(",") {
			p.advance()
			params = append(params, p.parseParam())
		}
		p.expectPunct(")")
		var result ast.TypeExpr
		if p.atPunct("->") {
			p.advance()
			result = p.parseType()
		}
		var body []ast.Stmt
		if p.atPunct(":") && p.peekNext().Kind != token.NEWLINE {
			p.advance()
		} else if p.atPunct(":") {
			p.advance()
			body, _ = p.parseBlock()
		}
		methods = append(methods, ast.TraitMethod{Name: mname, Params: params, Result: result, Body: body})
		p.skipNewlines()
	}
	end := p.consumeDedent()
	return ast.NewTraitDecl(start, decorators, name, requires, methods, end)
}

func (p *Parser) parseEnumDecl(decorators []*ast.Decorator) *ast.EnumDecl {
	start := p.expectKeyword("enum")
	name := p.expectIdent()
	p.expectPunct(":")
	p.advance()
	p.expectPunctOrIndent()

	var variants []ast.EnumVariant
	for p.cur.Kind != token.DEDENT && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		vname := p.expectIdent()
		var payload []ast.TypeExpr
		if p.atPunct("(") {
			p.advance()
			for !p.atPunct(")") && !p.atEOF() {
				payload = append(payload, p.parseType())
				if p.atPunct(",") {
					p.advance()
				}
			}
			p.expectPunct(")")
		}
		variants = append(variants, ast.EnumVariant{Name: vname, Payload: payload})
		p.skipNewlines()
	}
	end := p.consumeDedent()
	return ast.NewEnumDecl(start, decorators, name, variants, end)
}

func (p *Parser) parseNewtypeDecl(decorators []*ast.Decorator) *ast.NewtypeDecl {
	start := p.expectKeyword("newtype")
	name := p.expectIdent()
	p.expectPunct("=")
	underlying := p.parseType()
	return ast.NewNewtypeDecl(start, decorators, name, underlying)
}

func (p *Parser) parseConstDecl() *ast.ConstDecl {
	start := p.expectKeyword("const")
	name := p.expectIdent()
	var typ ast.TypeExpr
	if p.atPunct(":") {
		p.advance()
		typ = p.parseType()
	}
	p.expectPunct("=")
	value := p.parseExpr()
	return ast.NewConstDecl(start, name, typ, value)
}

func (p *Parser) parseTypeAliasDecl() *ast.TypeAliasDecl {
	start := p.expectKeyword("type")
	name := p.expectIdent()
	p.expectPunct("=")
	target := p.parseType()
	return ast.NewTypeAliasDecl(start, name, target)
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.expectKeyword("import")
	path := p.parseImportPath()
	var alias *ast.IdentNode
	if p.atKeyword("as") {
		p.advance()
		alias = p.expectIdent()
	}
	return ast.NewImportDecl(start, path, alias)
}

// parseImportFromDecl parses the `from path import a, b [as c]` style,
// which must interoperate with the plain `import path::segment [as c]`
// style parseImportDecl handles: both share parseImportPath's path
// grammar, this one just binds one or more names out of that path
// directly into scope instead of binding the module itself.
func (p *Parser) parseImportFromDecl() *ast.ImportFromDecl {
	start := p.expectKeyword("from")
	path := p.parseImportPath()
	p.expectKeyword("import")

	var names []ast.ImportedName
	for {
		name := p.expectIdent()
		var alias *ast.IdentNode
		if p.atKeyword("as") {
			p.advance()
			alias = p.expectIdent()
		}
		names = append(names, ast.ImportedName{Name: name, Alias: alias})
		if !p.atPunct(",") {
			break
		}
		p.advance()
	}
	last := names[len(names)-1]
	end := last.Name.End()
	if last.Alias != nil {
		end = last.Alias.End()
	}
	return ast.NewImportFromDecl(start, path, names, end)
}

// parseImportPath parses a dotted/`::`-separated module path (spec §6.3),
// accepting a leading run of `..`/`super::` walk-up markers ahead of the
// ordinary identifier segments. `super::` needs no special handling here:
// "super" lexes as a plain identifier like any other path segment. `..`
// does need it, since it lexes as the range operator token rather than an
// identifier; each occurrence folds into a synthetic "super" segment so
// the rest of the pipeline treats both spellings identically.
func (p *Parser) parseImportPath() []*ast.IdentNode {
	var path []*ast.IdentNode
	for p.atOp("..") {
		tok := p.advance().Tok
		path = append(path, ast.NewIdentNode("super", tok))
		if p.atPunct(".") || p.atPunct("::") {
			p.advance()
		}
	}
	path = append(path, p.expectIdent())
	for p.atPunct(".") || p.atPunct("::") {
		p.advance()
		path = append(path, p.expectIdent())
	}
	return path
}
