package emit

import (
	"golang.org/x/exp/slices"

	"github.com/dannys-code-corner/incan/ir"
)

// Output is one emitted file's rendered source, keyed by the target path it
// should be written under (relative to the project's source root).
type Output struct {
	Path string
	Text string
}

// Result is everything the project generator needs from emission: the
// rendered source files (one per module, plus the shared support module)
// and the deduplicated external-crate dependency set lowering collected.
type Result struct {
	Files   []Output
	Externs []string
}

// Emit renders every file of prog into target source text, grounded on
// spec §4.5's "token tree, then pretty-printer" discipline: each
// declaration builds its own Builder subtree via emitDecl, and Builder.
// Render assembles the final text. Helpers such as typeName and
// applyConversion still build short fragments with ordinary string
// concatenation before handing them to the Builder.
func Emit(prog *ir.Program) (*Result, error) {
	res := &Result{}
	externSeen := make(map[string]bool)

	for _, f := range prog.Files {
		b := NewBuilder()
		b.Text(fileHeader()).Newline()

		for _, d := range f.Decls {
			if imp, ok := d.(*ir.Import); ok {
				emitImport(b, imp)
			}
		}
		b.Newline()

		for i, d := range f.Decls {
			if _, ok := d.(*ir.Import); ok {
				continue
			}
			emitDecl(b, d)
			if i < len(f.Decls)-1 {
				b.Newline()
			}
		}

		res.Files = append(res.Files, Output{Path: modulePathToFile(f.Path), Text: b.Render()})
		for _, ex := range f.Externs {
			externSeen[ex] = true
		}
	}

	res.Files = append(res.Files, Output{Path: "support.rs", Text: supportModuleSource()})

	for ex := range externSeen {
		res.Externs = append(res.Externs, ex)
	}
	slices.Sort(res.Externs)
	return res, nil
}

func emitImport(b *Builder, imp *ir.Import) {
	if imp.External {
		b.Text("use ").Text(rustCratePath(imp.Path))
		if imp.Alias != "" && lastSegment(imp.Path) != imp.Alias {
			b.Text(" as ").Text(imp.Alias)
		}
		b.Text(";").Newline()
		return
	}
	b.Text("use crate::").Text(rustModulePath(imp.Path))
	if imp.Alias != "" && lastSegment(imp.Path) != imp.Alias {
		b.Text(" as ").Text(imp.Alias)
	}
	b.Text(";").Newline()
}

func lastSegment(dotted string) string {
	last := dotted
	for i := len(dotted) - 1; i >= 0; i-- {
		if dotted[i] == '.' {
			last = dotted[i+1:]
			break
		}
	}
	return last
}

func rustModulePath(dotted string) string {
	return dotsToColons(dotted)
}

func rustCratePath(dotted string) string {
	return dotsToColons(dotted)
}

func dotsToColons(dotted string) string {
	out := make([]byte, 0, len(dotted)+8)
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			out = append(out, ':', ':')
		} else {
			out = append(out, dotted[i])
		}
	}
	return string(out)
}

// modulePathToFile maps a dotted module path to its target source-tree
// location, mirroring the module-to-file mapping resolver.Discover used on
// the way in, so the project generator preserves the source module tree
// (spec §4.6 step 3).
func modulePathToFile(dotted string) string {
	out := make([]byte, 0, len(dotted)+4)
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			out = append(out, '/')
		} else {
			out = append(out, dotted[i])
		}
	}
	return string(out) + ".rs"
}
