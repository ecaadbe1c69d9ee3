package check

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/checktypes"
	"github.com/dannys-code-corner/incan/reporter"
	"github.com/dannys-code-corner/incan/symbols"
)

// checkTraitAdoption validates spec's trait composition rules (spec.md
// "Traits and adoption") for one class: every required (bodyless) method of
// each adopted trait must be satisfied, either by the class's own method or
// by exactly one adopted trait's default body. Two traits supplying
// conflicting default bodies for the same method name, with neither
// overridden by the class, is an error. A trait's `@requires(field: T)`
// field requirements must also be satisfied, by a field on the class
// itself or on its single inherited base.
//
// Only traits declared in the class's own module are resolved; a base name
// that does not match one is assumed to be the (single) inherited class and
// is left to fillTypeStub.
func checkTraitAdoption(d *ast.ClassDecl, file *ast.File, traits map[string]*ast.TraitDecl, stubs map[string]checktypes.Type, table *symbols.Table, handler *reporter.Handler) error {
	ownMethods := make(map[string]bool, len(d.Methods))
	for _, m := range d.Methods {
		ownMethods[m.Name.Name] = true
	}

	defaultProviders := make(map[string][]string)
	var methodOrder []string
	for _, base := range d.Bases {
		trait, ok := traits[base.Name]
		if !ok {
			continue
		}
		for _, tm := range trait.Methods {
			if ownMethods[tm.Name.Name] || tm.Body == nil {
				continue
			}
			if len(defaultProviders[tm.Name.Name]) == 0 {
				methodOrder = append(methodOrder, tm.Name.Name)
			}
			defaultProviders[tm.Name.Name] = append(defaultProviders[tm.Name.Name], trait.Name.Name)
		}
	}

	for _, base := range d.Bases {
		trait, ok := traits[base.Name]
		if !ok {
			continue
		}
		for _, tm := range trait.Methods {
			if tm.Body != nil || ownMethods[tm.Name.Name] || len(defaultProviders[tm.Name.Name]) > 0 {
				continue
			}
			if err := handler.HandleDiagnostic(reporter.Type, posOf(file, d.Name),
				missingTraitMethodError{trait: trait.Name.Name, method: tm.Name.Name}, nil); err != nil {
				return err
			}
		}
	}

	for _, method := range methodOrder {
		providers := defaultProviders[method]
		if len(providers) > 1 {
			if err := handler.HandleDiagnostic(reporter.Type, posOf(file, d.Name),
				traitMethodConflictError{method: method, traits: providers}, nil,
				"override "+method+" explicitly on the class to resolve the conflict"); err != nil {
				return err
			}
		}
	}

	classType, _ := stubs[d.Name.Name].(*checktypes.Record)
	for _, base := range d.Bases {
		trait, ok := traits[base.Name]
		if !ok || len(trait.Requires) == 0 {
			continue
		}
		for _, req := range trait.Requires {
			want := resolveType(file, req.Type, table, handler)
			got, found := findField(classType, req.Name.Name)
			if !found {
				if err := handler.HandleDiagnostic(reporter.Type, posOf(file, d.Name),
					missingTraitFieldError{trait: trait.Name.Name, field: req.Name.Name, expected: want.String()}, nil); err != nil {
					return err
				}
				continue
			}
			if !checktypes.Equal(want, got) && !(checktypes.IsNumeric(want) && checktypes.IsNumeric(got)) {
				if err := handler.HandleDiagnostic(reporter.Type, posOf(file, d.Name),
					traitFieldTypeMismatchError{trait: trait.Name.Name, field: req.Name.Name, expected: want.String(), got: got.String()}, nil); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// findField looks up name among rec's own fields, then recurses up its
// (single) inheritance chain through Bases. Method satisfaction in
// checkTraitAdoption does not walk that chain; it consults only the
// class's own methods and trait defaults.
func findField(rec *checktypes.Record, name string) (checktypes.Type, bool) {
	if rec == nil {
		return nil, false
	}
	for _, f := range rec.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	for _, base := range rec.Bases {
		if t, ok := findField(base, name); ok {
			return t, true
		}
	}
	return nil, false
}
