package lower

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/ir"
	"github.com/dannys-code-corner/incan/symbols"
)

func (l *lowerer) lowerDecl(d ast.Decl) ([]ir.Decl, error) {
	switch d := d.(type) {
	case *ast.FuncDecl:
		fn, err := l.lowerFuncDecl(d, checktypes.Unit)
		if err != nil {
			return nil, err
		}
		return []ir.Decl{fn}, nil
	case *ast.ModelDecl:
		m, err := l.lowerModelDecl(d)
		if err != nil {
			return nil, err
		}
		return []ir.Decl{m}, nil
	case *ast.ClassDecl:
		return l.lowerClassDecl(d)
	case *ast.TraitDecl:
		// A trait has no standalone IR node: its default bodies are copied
		// into each adopting class by lowerClassChain, and a bodyless
		// method is only ever a contract the checker already verified.
		return nil, nil
	case *ast.EnumDecl:
		return []ir.Decl{l.lowerEnumDecl(d)}, nil
	case *ast.NewtypeDecl:
		return []ir.Decl{l.lowerNewtypeDecl(d)}, nil
	case *ast.ConstDecl:
		c, err := l.lowerConstDecl(d)
		if err != nil {
			return nil, err
		}
		return []ir.Decl{c}, nil
	case *ast.TypeAliasDecl:
		// A pure naming construct: every reference to the alias already
		// resolved to its target type during collection.
		return nil, nil
	case *ast.ImportDecl:
		return []ir.Decl{l.lowerImportDecl(d)}, nil
	case *ast.ImportFromDecl:
		return l.lowerImportFromDecl(d), nil
	default:
		return nil, nil
	}
}

// deriveNamesOf reads the argument list of a `@derive(...)` decorator, if
// the declaration carries one. A declaration can only have one; a second
// is a duplicate decorator the parser already accepted but which has no
// well-defined merge semantics, so only the first is honored.
func deriveNamesOf(decorators []*ast.Decorator) []string {
	for _, dec := range decorators {
		if dec.Name.Name != "derive" {
			continue
		}
		names := make([]string, 0, len(dec.Args))
		for _, a := range dec.Args {
			if id, ok := a.Value.(*ast.IdentNode); ok {
				names = append(names, id.Name)
			}
		}
		return names
	}
	return nil
}

func (l *lowerer) typeNamed(name string) checktypes.Type {
	if e, ok := l.table.Lookup(name); ok && e.Type != nil {
		return e.Type
	}
	return checktypes.Unit
}

func (l *lowerer) lowerFuncDecl(d *ast.FuncDecl, selfType checktypes.Type) (*ir.FuncDecl, error) {
	l.table.Push()
	defer l.table.Pop()

	var recv *ir.Param
	if d.Receiver != nil {
		_ = l.table.Declare(symbols.Entry{
			Kind: symbols.Value, Name: "self", Type: selfType,
			Mutable: d.Receiver.Mutable, Origin: l.pos(d.Receiver.Name),
		}, l.handler)
		recv = &ir.Param{Name: "self", Typ: ir.Borrow(selfType)}
	}

	params := make([]ir.Param, len(d.Params))
	for i, p := range d.Params {
		pt := l.resolveType(p.Type)
		var def ir.Expr
		if p.Default != nil {
			var err error
			if def, err = l.lowerExpr(p.Default); err != nil {
				return nil, err
			}
		}
		params[i] = ir.Param{Name: p.Name.Name, Typ: ir.OwnedType(pt), Default: def}
		_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: p.Name.Name, Type: pt, Origin: l.pos(p.Name)}, l.handler)
	}

	result := checktypes.Type(checktypes.Unit)
	if d.Result != nil {
		result = l.resolveType(d.Result)
	}
	prevResult := l.funcResult
	l.funcResult = result
	defer func() { l.funcResult = prevResult }()

	body, err := l.lowerBlock(d.Body)
	if err != nil {
		return nil, err
	}
	return &ir.FuncDecl{Name: d.Name.Name, Async: d.Async, Receiver: recv, Params: params, Result: ir.OwnedType(result), Body: body}, nil
}

// lowerTraitMethod turns one default-bodied trait method into a standalone
// method for the adopting class named by selfType; it is cloned once per
// adopter rather than shared, since the emitter installs it directly into
// the class's own implementation block (spec's "parent methods installed
// on the child").
func (l *lowerer) lowerTraitMethod(tm ast.TraitMethod, selfType checktypes.Type) (*ir.FuncDecl, error) {
	l.table.Push()
	defer l.table.Pop()
	_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: "self", Type: selfType, Origin: l.pos(tm.Name)}, l.handler)

	params := make([]ir.Param, len(tm.Params))
	for i, p := range tm.Params {
		pt := l.resolveType(p.Type)
		var def ir.Expr
		if p.Default != nil {
			var err error
			if def, err = l.lowerExpr(p.Default); err != nil {
				return nil, err
			}
		}
		params[i] = ir.Param{Name: p.Name.Name, Typ: ir.OwnedType(pt), Default: def}
		_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: p.Name.Name, Type: pt, Origin: l.pos(p.Name)}, l.handler)
	}

	result := checktypes.Type(checktypes.Unit)
	if tm.Result != nil {
		result = l.resolveType(tm.Result)
	}
	prevResult := l.funcResult
	l.funcResult = result
	defer func() { l.funcResult = prevResult }()

	body, err := l.lowerBlock(tm.Body)
	if err != nil {
		return nil, err
	}
	return &ir.FuncDecl{Name: tm.Name.Name, Receiver: &ir.Param{Name: "self", Typ: ir.Borrow(selfType)}, Params: params, Result: ir.OwnedType(result), Body: body}, nil
}

func (l *lowerer) lowerModelDecl(d *ast.ModelDecl) (*ir.ModelDecl, error) {
	fields := make([]ir.Field, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = ir.Field{Name: f.Name.Name, Typ: ir.OwnedType(l.resolveType(f.Type))}
	}
	return &ir.ModelDecl{Name: d.Name.Name, Pub: d.Pub, Fields: fields, Derives: ir.ExpandDerives(deriveNamesOf(d.Decorators))}, nil
}

// classLowering is the memoized, fully-flattened result of lowering one
// class and its ancestor chain: fields and methods already include
// everything inherited, so a descendant only has to prepend its own.
type classLowering struct {
	fields     []ir.Field
	methods    []*ir.FuncDecl
	methodIdx  map[string]int
	traitImpls []ir.TraitImplDecl
	baseName   string
}

func (l *lowerer) lowerClassDecl(d *ast.ClassDecl) ([]ir.Decl, error) {
	res, err := l.lowerClassChain(d.Name.Name)
	if err != nil {
		return nil, err
	}
	cls := &ir.ClassDecl{
		Name: d.Name.Name, Pub: d.Pub, BaseName: res.baseName,
		Fields: res.fields, Methods: res.methods,
		Derives: ir.ExpandDerives(deriveNamesOf(d.Decorators)),
	}
	out := make([]ir.Decl, 0, 1+len(res.traitImpls))
	out = append(out, cls)
	for i := range res.traitImpls {
		out = append(out, &res.traitImpls[i])
	}
	return out, nil
}

// lowerClassChain lowers name's class (following its single-inheritance
// chain, same-module only, matching the scope check.checkTraitAdoption
// already validated against) and memoizes the result so a diamond of
// lookups from multiple descendants only computes an ancestor once.
func (l *lowerer) lowerClassChain(name string) (*classLowering, error) {
	if cached, ok := l.classCache[name]; ok {
		return cached, nil
	}
	cd, ok := l.classes[name]
	if !ok {
		return &classLowering{methodIdx: map[string]int{}}, nil
	}
	selfType := l.typeNamed(name)

	var fields []ir.Field
	var methods []*ir.FuncDecl
	idx := make(map[string]int)
	baseName := ""
	for _, base := range cd.Bases {
		baseDecl, isClass := l.classes[base.Name]
		if !isClass {
			continue
		}
		baseName = baseDecl.Name.Name
		baseRes, err := l.lowerClassChain(baseName)
		if err != nil {
			return nil, err
		}
		fields = append(fields, baseRes.fields...)
		for _, m := range baseRes.methods {
			idx[m.Name] = len(methods)
			methods = append(methods, m)
		}
		break
	}

	for _, f := range cd.Fields {
		fields = append(fields, ir.Field{Name: f.Name.Name, Typ: ir.OwnedType(l.resolveType(f.Type))})
	}

	ownMethodNames := make(map[string]bool, len(cd.Methods))
	for _, m := range cd.Methods {
		ownMethodNames[m.Name.Name] = true
	}
	for _, m := range cd.Methods {
		lowered, err := l.lowerFuncDecl(m, selfType)
		if err != nil {
			return nil, err
		}
		if i, exists := idx[m.Name.Name]; exists {
			methods[i] = lowered
		} else {
			idx[m.Name.Name] = len(methods)
			methods = append(methods, lowered)
		}
	}

	traitImpls, err := l.adoptTraitDefaults(cd, ownMethodNames, selfType, &methods, idx)
	if err != nil {
		return nil, err
	}

	res := &classLowering{fields: fields, methods: methods, methodIdx: idx, traitImpls: traitImpls, baseName: baseName}
	l.classCache[name] = res
	return res, nil
}

// adoptTraitDefaults installs, into methods/idx, every default-bodied
// method of a trait cd adopts that cd's own body does not override; it
// mirrors check.checkTraitAdoption's provider bookkeeping exactly (that
// pass already rejected a two-trait conflict), so here it is safe to take
// whichever provider was recorded.
func (l *lowerer) adoptTraitDefaults(cd *ast.ClassDecl, ownMethodNames map[string]bool, selfType checktypes.Type, methods *[]*ir.FuncDecl, idx map[string]int) ([]ir.TraitImplDecl, error) {
	type provider struct {
		trait *ast.TraitDecl
		tm    ast.TraitMethod
	}
	byTrait := make(map[string][]string)
	var traitOrder []string
	seen := make(map[string]provider)
	var methodOrder []string

	for _, base := range cd.Bases {
		trait, ok := l.traits[base.Name]
		if !ok {
			continue
		}
		for _, tm := range trait.Methods {
			if ownMethodNames[tm.Name.Name] || tm.Body == nil {
				continue
			}
			if _, already := seen[tm.Name.Name]; !already {
				methodOrder = append(methodOrder, tm.Name.Name)
				seen[tm.Name.Name] = provider{trait: trait, tm: tm}
				if len(byTrait[trait.Name.Name]) == 0 {
					traitOrder = append(traitOrder, trait.Name.Name)
				}
				byTrait[trait.Name.Name] = append(byTrait[trait.Name.Name], tm.Name.Name)
			}
		}
	}

	for _, name := range methodOrder {
		p := seen[name]
		lowered, err := l.lowerTraitMethod(p.tm, selfType)
		if err != nil {
			return nil, err
		}
		if i, exists := idx[name]; exists {
			(*methods)[i] = lowered
		} else {
			idx[name] = len(*methods)
			*methods = append(*methods, lowered)
		}
	}

	impls := make([]ir.TraitImplDecl, 0, len(traitOrder))
	for _, traitName := range traitOrder {
		impls = append(impls, ir.TraitImplDecl{ClassName: cd.Name.Name, TraitName: traitName, Methods: byTrait[traitName]})
	}
	return impls, nil
}

func (l *lowerer) lowerEnumDecl(d *ast.EnumDecl) *ir.EnumDecl {
	variants := make([]ir.EnumVariant, len(d.Variants))
	for i, v := range d.Variants {
		payload := make([]ir.Type, len(v.Payload))
		for j, p := range v.Payload {
			payload[j] = ir.OwnedType(l.resolveType(p))
		}
		variants[i] = ir.EnumVariant{Name: v.Name.Name, Payload: payload}
	}
	return &ir.EnumDecl{Name: d.Name.Name, Pub: d.Pub, Variants: variants, Derives: ir.ExpandDerives(deriveNamesOf(d.Decorators))}
}

func (l *lowerer) lowerNewtypeDecl(d *ast.NewtypeDecl) *ir.NewtypeDecl {
	return &ir.NewtypeDecl{
		Name: d.Name.Name, Pub: d.Pub,
		Underlying: ir.OwnedType(l.resolveType(d.Underlying)),
		Derives:    ir.ExpandDerives(deriveNamesOf(d.Decorators)),
	}
}

func (l *lowerer) lowerConstDecl(d *ast.ConstDecl) (*ir.ConstDecl, error) {
	declared := l.resolveType(d.Type)
	value, err := l.lowerExpr(d.Value)
	if err != nil {
		return nil, err
	}
	out := &ir.ConstDecl{Name: d.Name.Name, Pub: d.Pub, Typ: ir.OwnedType(declared), Value: value}
	if fr, ok := declared.(*checktypes.Frozen); ok {
		out.Backing = &ir.FrozenBacking{Typ: fr.Elem, Value: value}
	}
	return out, nil
}

func (l *lowerer) lowerImportDecl(d *ast.ImportDecl) *ir.Import {
	segs := make([]string, len(d.Path))
	for i, id := range d.Path {
		segs[i] = id.Name
	}
	external := len(segs) > 0 && segs[0] == "rust"
	if external {
		// The "rust" segment only marks the import as external; the
		// dependency set and the emitted `use` path both want the crate's
		// own path, so it is stripped here rather than carried through.
		cratePath := joinDotted(segs[1:])
		alias := segs[len(segs)-1]
		if d.Alias != nil {
			alias = d.Alias.Name
		}
		l.externs[segs[1]] = true
		return &ir.Import{Path: cratePath, Alias: alias, External: true}
	}
	// check.Collect already validated this import, including any
	// crate::/super:: resolution, so the walk-up here cannot fail.
	path, _ := resolveImportPath(segs, l.path)
	alias := lastDotted(path)
	if d.Alias != nil {
		alias = d.Alias.Name
	}
	return &ir.Import{Path: path, Alias: alias, External: false}
}

// lowerImportFromDecl lowers `from path import a, b [as c]` into one
// ir.Import per name: each renders as its own `use crate::path::name [as
// alias];` line, bringing the name into unqualified scope the same way a
// single-item ModuleAlias import does, just at item rather than module
// granularity.
func (l *lowerer) lowerImportFromDecl(d *ast.ImportFromDecl) []ir.Decl {
	segs := make([]string, len(d.Path))
	for i, id := range d.Path {
		segs[i] = id.Name
	}
	path, _ := resolveImportPath(segs, l.path)

	out := make([]ir.Decl, 0, len(d.Names))
	for _, item := range d.Names {
		alias := item.Name.Name
		if item.Alias != nil {
			alias = item.Alias.Name
		}
		out = append(out, &ir.Import{Path: path + "." + item.Name.Name, Alias: alias, External: false})
	}
	return out
}

// resolveImportPath mirrors check.resolveImportPath: it turns raw import
// path segments into the root-relative dotted path the rest of lowering
// and emission expect, honoring a leading "crate" marker (project root,
// already the implicit default) and a leading run of "super" markers (one
// walk-up per occurrence, relative to this module's own directory).
func resolveImportPath(segs []string, modulePath string) (string, bool) {
	if segs[0] == "crate" {
		segs = segs[1:]
		if len(segs) == 0 {
			return "", false
		}
		return joinDotted(segs), true
	}
	upCount := 0
	for upCount < len(segs) && segs[upCount] == "super" {
		upCount++
	}
	if upCount == 0 {
		return joinDotted(segs), true
	}
	rest := segs[upCount:]
	dir := splitDotted(modulePath)
	dir = dir[:len(dir)-1]
	if upCount > len(dir) {
		return "", false
	}
	dir = dir[:len(dir)-upCount]
	full := append(append([]string{}, dir...), rest...)
	if len(full) == 0 {
		return "", false
	}
	return joinDotted(full), true
}

func lastDotted(path string) string {
	segs := splitDotted(path)
	return segs[len(segs)-1]
}

func splitDotted(path string) []string {
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	return append(out, path[start:])
}

func joinDotted(segs []string) string {
	out := segs[0]
	for _, s := range segs[1:] {
		out += "." + s
	}
	return out
}
