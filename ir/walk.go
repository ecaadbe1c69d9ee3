package ir

// Walk visits every declaration in file, depth-first, calling enter when a
// node is first reached and exit (if non-nil) once its children have all
// been visited: a class's methods are visited between its own enter and
// exit; no other declaration kind has children visited (an enum's variants
// are not Decls and are not passed to the callbacks). Returning a non-nil error from either
// callback aborts the walk and propagates that error.
//
// Grounded on the teacher's protobuf descriptor walker, which visits a
// FileDescriptor's messages (recursing into nested messages/enums/fields),
// enums, extensions, and services the same enter-then-children-then-exit
// way; this is the same shape applied to a lowered module's own nesting
// (class -> methods) instead of a descriptor tree.
func Walk(file *File, enter, exit func(Decl) error) error {
	for _, d := range file.Decls {
		if err := walkDecl(d, enter, exit); err != nil {
			return err
		}
	}
	return nil
}

func walkDecl(d Decl, enter, exit func(Decl) error) error {
	if err := enter(d); err != nil {
		return err
	}
	switch d := d.(type) {
	case *ClassDecl:
		for _, m := range d.Methods {
			if err := walkDecl(m, enter, exit); err != nil {
				return err
			}
		}
	}
	if exit != nil {
		if err := exit(d); err != nil {
			return err
		}
	}
	return nil
}

// WalkExpr visits e and every sub-expression it contains, depth-first,
// calling fn on each. Used by lowering passes that need to rewrite or
// collect over an already-lowered expression tree (e.g. collecting every
// external-crate call inside a function body).
func WalkExpr(e Expr, fn func(Expr) error) error {
	if e == nil {
		return nil
	}
	if err := fn(e); err != nil {
		return err
	}
	switch e := e.(type) {
	case *BinaryExpr:
		if err := WalkExpr(e.Left, fn); err != nil {
			return err
		}
		return WalkExpr(e.Right, fn)
	case *UnaryExpr:
		return WalkExpr(e.Operand, fn)
	case *ListExpr:
		return walkExprs(e.Elems, fn)
	case *SetExpr:
		return walkExprs(e.Elems, fn)
	case *DictExpr:
		for _, entry := range e.Entries {
			if err := WalkExpr(entry.Key, fn); err != nil {
				return err
			}
			if err := WalkExpr(entry.Value, fn); err != nil {
				return err
			}
		}
	case *TupleExpr:
		return walkExprs(e.Elems, fn)
	case *CallExpr:
		return walkExprs(e.Args, fn)
	case *MethodCallExpr:
		if err := WalkExpr(e.Receiver, fn); err != nil {
			return err
		}
		return walkExprs(e.Args, fn)
	case *ConstructExpr:
		for _, f := range e.Fields {
			if err := WalkExpr(f.Value, fn); err != nil {
				return err
			}
		}
	case *FieldAccessExpr:
		return WalkExpr(e.Receiver, fn)
	case *IndexExpr:
		if err := WalkExpr(e.Receiver, fn); err != nil {
			return err
		}
		return WalkExpr(e.Index, fn)
	case *SliceExpr:
		if err := WalkExpr(e.Receiver, fn); err != nil {
			return err
		}
		if err := WalkExpr(e.Low, fn); err != nil {
			return err
		}
		if err := WalkExpr(e.High, fn); err != nil {
			return err
		}
		return WalkExpr(e.Step, fn)
	case *MatchExpr:
		if err := WalkExpr(e.Scrutinee, fn); err != nil {
			return err
		}
		for _, arm := range e.Arms {
			if err := WalkExpr(arm.Guard, fn); err != nil {
				return err
			}
			if err := WalkExpr(arm.Result, fn); err != nil {
				return err
			}
		}
	case *IfExpr:
		if err := WalkExpr(e.Cond, fn); err != nil {
			return err
		}
		if err := WalkExpr(e.Then, fn); err != nil {
			return err
		}
		return WalkExpr(e.Else, fn)
	case *AwaitExpr:
		return WalkExpr(e.Operand, fn)
	case *PropagateErrorExpr:
		return WalkExpr(e.Operand, fn)
	case *FormatExpr:
		for _, frag := range e.Fragments {
			if frag.IsExpr {
				if err := WalkExpr(frag.Value, fn); err != nil {
					return err
				}
			}
		}
	case *ClosureExpr:
		return WalkExpr(e.Body, fn)
	case *RangeExpr:
		if err := WalkExpr(e.Low, fn); err != nil {
			return err
		}
		return WalkExpr(e.High, fn)
	case *ComprehensionExpr:
		if err := WalkExpr(e.Iter, fn); err != nil {
			return err
		}
		if err := WalkExpr(e.Cond, fn); err != nil {
			return err
		}
		if err := WalkExpr(e.Elem, fn); err != nil {
			return err
		}
		if err := WalkExpr(e.KeyElem, fn); err != nil {
			return err
		}
		return WalkExpr(e.ValElem, fn)
	}
	return nil
}

func walkExprs(exprs []Expr, fn func(Expr) error) error {
	for _, e := range exprs {
		if err := WalkExpr(e, fn); err != nil {
			return err
		}
	}
	return nil
}
