package region

import "github.com/cursivelang/cursive0/internal/ast"

// BindingProv looks up the provenance a previously bound name carries —
// supplied by internal/check's binding table, which records each let's
// provenance at the point it is bound.
type BindingProv interface {
	ProvOf(name string) (Tag, bool)
}

// ProvExpr infers the provenance-of-value rules from §4.10: a literal has
// no provenance obligation (Bottom); an identifier's provenance is
// whatever its binding carries; field/tuple-index/deref projections
// inherit their base's provenance (a field of a region-allocated record
// lives exactly as long as the record does); an `^alloc` expression's
// provenance is the target region (or the current frame, if unaddressed).
func ProvExpr(e ast.Expr, stack *Stack, binds BindingProv) Tag {
	switch x := e.(type) {
	case *ast.Literal:
		return Bottom
	case *ast.Ident:
		if t, ok := binds.ProvOf(x.Name); ok {
			return t
		}
		return Stack
	case *ast.PathExpr:
		return Global
	case *ast.FieldExpr:
		return ProvExpr(x.Base, stack, binds)
	case *ast.TupleIndexExpr:
		return ProvExpr(x.Base, stack, binds)
	case *ast.DerefExpr:
		return ProvExpr(x.Base, stack, binds)
	case *ast.AllocExpr:
		if x.Region != "" {
			return RegionTag(x.Region)
		}
		return stack.Current()
	case *ast.TupleExpr:
		return joinAll(x.Elems, stack, binds)
	case *ast.BlockExpr:
		if x.Tail != nil {
			return ProvExpr(x.Tail, stack, binds)
		}
		return Bottom
	default:
		return Stack
	}
}

func joinAll(elems []ast.Expr, stack *Stack, binds BindingProv) Tag {
	acc := Bottom
	for _, e := range elems {
		t := ProvExpr(e, stack, binds)
		joined, ok := Join(acc, t)
		if !ok {
			return Stack
		}
		acc = joined
	}
	return acc
}

// ProvPlace infers the provenance of a place expression for the purposes
// of CheckAssignment's lhs — identical to ProvExpr's rules, kept as a
// distinct entry point since §4.10 states the place and value provenance
// judgments separately even though they coincide for every node shape
// this bootstrap core supports.
func ProvPlace(e ast.Expr, stack *Stack, binds BindingProv) Tag {
	return ProvExpr(e, stack, binds)
}
