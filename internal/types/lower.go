package types

import (
	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
)

// LowerTypeExpr converts a parsed TypeExpr into the canonical TypeRef
// form, resolving array lengths via resolver and reporting malformed
// constructs as diagnostics rather than panicking — lowering runs during
// semantic analysis over already-parsed ASTs, so a malformed node here
// reflects a real source error, not an internal bug.
func LowerTypeExpr(te ast.TypeExpr, resolver ConstLenResolver) (*TypeRef, []diag.Diagnostic) {
	switch t := te.(type) {
	case *ast.NamedType:
		args, errs := lowerAll(t.Args, resolver)
		return PathOf(t.Path, args...), errs

	case *ast.PermType:
		base, errs := LowerTypeExpr(t.Base, resolver)
		return PermOf(lowerPerm(t.Perm), base), errs

	case *ast.TupleType:
		elems, errs := lowerAll(t.Elems, resolver)
		return TupleOf(elems...), errs

	case *ast.ArrayType:
		elem, errs := LowerTypeExpr(t.Elem, resolver)
		n, lenErr := ConstLen(t.LenExpr, resolver)
		if lenErr != nil {
			errs = append(errs, *lenErr)
		}
		return ArrayOf(elem, n), errs

	case *ast.SliceType:
		elem, errs := LowerTypeExpr(t.Elem, resolver)
		return SliceOf(elem), errs

	case *ast.FuncType:
		var errs []diag.Diagnostic
		params := make([]FuncParam, len(t.Params))
		for i, p := range t.Params {
			pt, perrs := LowerTypeExpr(p.Type, resolver)
			errs = append(errs, perrs...)
			params[i] = FuncParam{Move: p.Move, Type: pt}
		}
		ret, rerrs := LowerTypeExpr(t.Ret, resolver)
		errs = append(errs, rerrs...)
		return FuncOf(params, ret), errs

	case *ast.UnionType:
		members, errs := lowerAll(t.Members, resolver)
		return UnionOf(members...), errs

	case *ast.PtrType:
		elem, errs := LowerTypeExpr(t.Elem, resolver)
		return PtrOf(elem, lowerPtrState(t.State)), errs

	case *ast.RawPtrType:
		elem, errs := LowerTypeExpr(t.Elem, resolver)
		return RawPtrOf(lowerRawQual(t.Qual), elem), errs

	case *ast.StringType:
		return StringOf(lowerSBState(t.State)), nil

	case *ast.BytesType:
		return BytesOf(lowerSBState(t.State)), nil

	case *ast.ModalStateType:
		args, errs := lowerAll(t.Args, resolver)
		return ModalStateOf(t.Path, t.State, args...), errs

	case *ast.DynamicType:
		return DynamicOf(t.ClassPath), nil

	case *ast.RefineType:
		base, errs := LowerTypeExpr(t.Base, resolver)
		return RefineOf(base, &PredicateExpr{Source: t.Predicate.String()}), errs

	case *ast.RangeTypeExpr:
		return RangeType, nil

	default:
		return NeverType, []diag.Diagnostic{{
			Code:     diag.ESemTypeMismatch,
			Severity: diag.SeverityError,
			Message:  "unrecognized type expression",
		}}
	}
}

func lowerAll(exprs []ast.TypeExpr, resolver ConstLenResolver) ([]*TypeRef, []diag.Diagnostic) {
	var errs []diag.Diagnostic
	out := make([]*TypeRef, len(exprs))
	for i, e := range exprs {
		t, e2 := LowerTypeExpr(e, resolver)
		out[i] = t
		errs = append(errs, e2...)
	}
	return out, errs
}

func lowerPerm(p ast.PermKind) Perm {
	switch p {
	case ast.PermUnique:
		return PermUnique
	case ast.PermShared:
		return PermShared
	default:
		return PermConst
	}
}

func lowerPtrState(s ast.PtrKind) PtrState {
	switch s {
	case ast.PtrValid:
		return PtrValid
	case ast.PtrNull:
		return PtrNull
	case ast.PtrExpired:
		return PtrExpired
	default:
		return PtrUnset
	}
}

func lowerRawQual(q ast.RawPtrQual) RawQual {
	if q == ast.RawMut {
		return RawMut
	}
	return RawImm
}

func lowerSBState(s ast.StringBytesState) SBState {
	switch s {
	case ast.SBManaged:
		return SBManaged
	case ast.SBView:
		return SBView
	default:
		return SBUnset
	}
}
