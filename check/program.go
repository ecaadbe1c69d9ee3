package check

import (
	"strings"

	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/resolver"
	"github.com/dannys-code-corner/incan/symbols"
)

// Program is the result of collection: every module's parsed AST paired
// with its own module-level symbol table, so the checking pass can resolve
// both local names and, through an import alias, another module's
// top-level names.
type Program struct {
	Modules []resolver.Module
	Tables  map[string]*symbols.Table
}

// moduleByPath finds a collected module's table by its dotted import path.
func (p *Program) moduleByPath(path string) (*symbols.Table, bool) {
	t, ok := p.Tables[path]
	return t, ok
}

// Collect runs the collection pass (spec §4.3.1) over every module, in the
// dependency order resolver.Order produced: each module's imports are
// collected before the module itself, so import aliases can resolve
// immediately against an already-populated dependency table.
func Collect(modules []resolver.Module, handler *reporter.Handler) (*Program, error) {
	prog := &Program{Modules: modules, Tables: make(map[string]*symbols.Table, len(modules))}
	for _, m := range modules {
		prog.Tables[m.Path] = symbols.NewTable()
	}
	for _, m := range modules {
		if err := collectModule(m, prog, handler); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func collectModule(m resolver.Module, prog *Program, handler *reporter.Handler) error {
	table := prog.Tables[m.Path]

	// Pass A: register a stub TypeName entry for every type declaration so
	// forward and mutually-recursive references within the module resolve.
	stubs := make(map[string]checktypes.Type)
	for _, d := range m.File.Decls {
		name, stub := typeStub(d)
		if stub == nil {
			continue
		}
		stubs[name] = stub
		entry := symbols.Entry{Kind: symbols.TypeName, Name: name, Type: stub, Origin: declPos(m.File, d)}
		if err := table.Declare(entry, handler); err != nil {
			return err
		}
	}

	// Pass B: fill in the stubs' field/variant/underlying types, now that
	// every type name in the module resolves.
	for _, d := range m.File.Decls {
		fillTypeStub(d, m.File, stubs, table, handler)
	}

	// Trait adoption is validated against the traits declared in this same
	// module, once every class's and trait's shape is known.
	traits := make(map[string]*ast.TraitDecl)
	for _, d := range m.File.Decls {
		if t, ok := d.(*ast.TraitDecl); ok {
			traits[t.Name.Name] = t
		}
	}
	for _, d := range m.File.Decls {
		if c, ok := d.(*ast.ClassDecl); ok {
			if err := checkTraitAdoption(c, m.File, traits, stubs, table, handler); err != nil {
				return err
			}
		}
	}

	// Pass C: register functions, consts, and imports; their types may
	// reference the type declarations filled in above.
	for _, d := range m.File.Decls {
		if err := collectValueDecl(d, m.File, table, prog, m.Path, handler); err != nil {
			return err
		}
	}
	return nil
}

func declPos(f *ast.File, d ast.Decl) ast.SourcePos {
	return f.Info.NodeInfo(d).Start()
}

func typeStub(d ast.Decl) (string, checktypes.Type) {
	switch d := d.(type) {
	case *ast.ModelDecl:
		return d.Name.Name, &checktypes.Record{Name: d.Name.Name, IsClass: false}
	case *ast.ClassDecl:
		return d.Name.Name, &checktypes.Record{Name: d.Name.Name, IsClass: true}
	case *ast.EnumDecl:
		return d.Name.Name, &checktypes.Enum{Name: d.Name.Name}
	case *ast.NewtypeDecl:
		return d.Name.Name, &checktypes.Newtype{Name: d.Name.Name}
	case *ast.TraitDecl:
		// Traits are not first-class values in checktypes (spec models
		// adoption, not a trait-typed value), but the name must still
		// occupy the type namespace so `with T1, T2` and `@requires(T)`
		// resolve. A Record with no fields stands in for "the set of
		// methods this name requires", matched against at adoption sites.
		return d.Name.Name, &checktypes.Record{Name: d.Name.Name, IsTrait: true}
	default:
		return "", nil
	}
}

func fillTypeStub(d ast.Decl, file *ast.File, stubs map[string]checktypes.Type, table *symbols.Table, handler *reporter.Handler) {
	switch d := d.(type) {
	case *ast.ModelDecl:
		rec := stubs[d.Name.Name].(*checktypes.Record)
		rec.Fields = fieldTypes(d.Fields, file, table, handler)
	case *ast.ClassDecl:
		rec := stubs[d.Name.Name].(*checktypes.Record)
		rec.Fields = fieldTypes(d.Fields, file, table, handler)
		// Spec disallows multiple inheritance (traits provide composition
		// instead), so only the first non-trait base becomes the parent;
		// trait names in Bases are adopted, not inherited, and are checked
		// separately by checkTraitAdoption.
		for _, base := range d.Bases {
			bt, ok := stubs[base.Name]
			if !ok {
				continue
			}
			brec, ok := bt.(*checktypes.Record)
			if !ok || brec.IsTrait {
				continue
			}
			rec.Bases = append(rec.Bases, brec)
			break
		}
	case *ast.EnumDecl:
		en := stubs[d.Name.Name].(*checktypes.Enum)
		for _, v := range d.Variants {
			payload := make([]checktypes.Type, len(v.Payload))
			for i, p := range v.Payload {
				payload[i] = resolveType(file, p, table, handler)
			}
			en.Variants = append(en.Variants, checktypes.EnumVariant{Name: v.Name.Name, Payload: payload})
		}
	case *ast.NewtypeDecl:
		nt := stubs[d.Name.Name].(*checktypes.Newtype)
		nt.Underlying = resolveType(file, d.Underlying, table, handler)
	}
}

func fieldTypes(fields []ast.FieldDecl, file *ast.File, table *symbols.Table, handler *reporter.Handler) []checktypes.Field {
	out := make([]checktypes.Field, len(fields))
	for i, f := range fields {
		out[i] = checktypes.Field{Name: f.Name.Name, Type: resolveType(file, f.Type, table, handler)}
	}
	return out
}

func collectValueDecl(d ast.Decl, file *ast.File, table *symbols.Table, prog *Program, modulePath string, handler *reporter.Handler) error {
	switch d := d.(type) {
	case *ast.FuncDecl:
		sig := funcSignature(d, file, table, handler)
		return table.Declare(symbols.Entry{Kind: symbols.Function, Name: d.Name.Name, Type: sig, Origin: file.Info.NodeInfo(d.Name).Start()}, handler)
	case *ast.ConstDecl:
		typ := resolveType(file, d.Type, table, handler)
		return table.Declare(symbols.Entry{Kind: symbols.Value, Name: d.Name.Name, Type: typ, Origin: file.Info.NodeInfo(d.Name).Start()}, handler)
	case *ast.TypeAliasDecl:
		typ := resolveType(file, d.Target, table, handler)
		return table.Declare(symbols.Entry{Kind: symbols.TypeName, Name: d.Name.Name, Type: typ, Origin: file.Info.NodeInfo(d.Name).Start()}, handler)
	case *ast.ImportDecl:
		pos := file.Info.NodeInfo(d).Start()
		segs := identNames(d.Path)
		// `rust::crate[::...]` names an external-crate dependency, not a
		// module the resolver discovered on disk: it never appears in
		// prog.Tables, so it is exempted from the module-exists check and
		// carried through as an External alias instead. The leading "rust"
		// segment is only a marker distinguishing this from a local-module
		// import; it is never part of the crate's own path, so AliasOf
		// drops it.
		if segs[0] == "rust" {
			cratePath := joinDotted(segs[1:])
			alias := segs[len(segs)-1]
			if d.Alias != nil {
				alias = d.Alias.Name
			}
			return table.Declare(symbols.Entry{Kind: symbols.ModuleAlias, Name: alias, AliasOf: cratePath, External: true, Origin: pos}, handler)
		}
		path, ok := resolveImportPath(segs, modulePath)
		if !ok {
			return handler.HandleDiagnostic(reporter.Resolve, pos, importEscapesRootError{path: joinDotted(segs)}, nil)
		}
		alias := lastDotted(path)
		if d.Alias != nil {
			alias = d.Alias.Name
		}
		if _, ok := prog.moduleByPath(path); !ok {
			return handler.HandleDiagnostic(reporter.Resolve, pos, importNotFoundError{path: path}, nil)
		}
		return table.Declare(symbols.Entry{Kind: symbols.ModuleAlias, Name: alias, AliasOf: path, Origin: pos}, handler)
	case *ast.ImportFromDecl:
		pos := file.Info.NodeInfo(d).Start()
		segs := identNames(d.Path)
		path, ok := resolveImportPath(segs, modulePath)
		if !ok {
			return handler.HandleDiagnostic(reporter.Resolve, pos, importEscapesRootError{path: joinDotted(segs)}, nil)
		}
		depTable, ok := prog.moduleByPath(path)
		if !ok {
			return handler.HandleDiagnostic(reporter.Resolve, pos, importNotFoundError{path: path}, nil)
		}
		for _, item := range d.Names {
			entry, found := depTable.Module().Lookup(item.Name.Name)
			if !found {
				if err := handler.HandleDiagnostic(reporter.Resolve, pos, importNameNotFoundError{name: item.Name.Name, path: path}, nil); err != nil {
					return err
				}
				continue
			}
			local := item.Name.Name
			if item.Alias != nil {
				local = item.Alias.Name
			}
			entry.Name = local
			entry.Origin = pos
			if err := table.Declare(entry, handler); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func funcSignature(d *ast.FuncDecl, file *ast.File, table *symbols.Table, handler *reporter.Handler) *checktypes.Func {
	params := make([]checktypes.Type, len(d.Params))
	for i, p := range d.Params {
		params[i] = resolveType(file, p.Type, table, handler)
	}
	result := checktypes.Type(checktypes.Unit)
	if d.Result != nil {
		result = resolveType(file, d.Result, table, handler)
	}
	return &checktypes.Func{Params: params, Result: result, Async: d.Async}
}

func joinDotted(segs []string) string {
	out := segs[0]
	for _, s := range segs[1:] {
		out += "." + s
	}
	return out
}

func lastDotted(path string) string {
	segs := strings.Split(path, ".")
	return segs[len(segs)-1]
}

func identNames(path []*ast.IdentNode) []string {
	segs := make([]string, len(path))
	for i, id := range path {
		segs[i] = id.Name
	}
	return segs
}

// resolveImportPath turns an import's raw path segments into the
// root-relative dotted path resolver.Module.Path uses, honoring spec
// §6.3's leading `crate::` (explicit project root, a no-op strip since
// every other path is already root-relative) and leading `super::`/`..`
// markers (one walk-up per occurrence, parsed as synthetic "super"
// segments by parser.parseImportPath). ok is false when a relative import
// walks up past the project root.
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
	dir := strings.Split(modulePath, ".")
	dir = dir[:len(dir)-1] // the current module's own containing directory
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
