package types

import (
	"fmt"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/resolve"
)

// ConstLenResolver looks up a static-let's constant integer value by
// identifier or qualified path, for use as an array length (§4.5/§4.6).
// internal/check supplies the real implementation backed by its static
// constant table; tests can supply a map-backed stub.
type ConstLenResolver interface {
	ResolveConstInt(path []string) (uint64, bool)
}

// ConstLen evaluates an array-length expression to a resolved u64. Only
// the forms §4.5 allows are accepted: an integer literal, a bare
// identifier or qualified path naming a `static const` integer. Anything
// else is rejected with diag.ESemConstLen (E-SEM-0215).
func ConstLen(e ast.Expr, r ConstLenResolver) (uint64, *diag.Diagnostic) {
	switch v := e.(type) {
	case *ast.Literal:
		if v.Kind != ast.IntLit {
			return 0, constLenErr(v.Pos, "array length must be an integer constant")
		}
		n, ok := asUint64(v.Value)
		if !ok {
			return 0, constLenErr(v.Pos, "array length literal is out of range")
		}
		return n, nil
	case *ast.Ident:
		n, ok := r.ResolveConstInt([]string{v.Name})
		if !ok {
			return 0, constLenErr(v.Pos, fmt.Sprintf("%q is not a known constant length", v.Name))
		}
		return n, nil
	case *ast.PathExpr:
		n, ok := r.ResolveConstInt(v.Segments)
		if !ok {
			return 0, constLenErr(v.Pos, "path does not name a known constant length")
		}
		return n, nil
	default:
		return 0, constLenErr(e.Position(), "array length must be a literal or a static const reference")
	}
}

func asUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

func constLenErr(pos ast.Pos, msg string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     diag.ESemConstLen,
		Severity: diag.SeverityError,
		Message:  msg,
	}
}

// staticResolverAdapter lets a resolve.ScopeContext-backed static table
// satisfy ConstLenResolver without internal/types importing internal/check.
type staticResolverAdapter struct {
	ctx    *resolve.ScopeContext
	consts map[resolve.IdKey]uint64
}

// NewStaticConstLenResolver builds a ConstLenResolver over a flat table
// of already-evaluated static constants keyed by their IdKey, used by the
// simpler single-module test fixtures; internal/check's real resolver
// threads through full qualified-path resolution instead.
func NewStaticConstLenResolver(ctx *resolve.ScopeContext, consts map[resolve.IdKey]uint64) ConstLenResolver {
	return &staticResolverAdapter{ctx: ctx, consts: consts}
}

func (s *staticResolverAdapter) ResolveConstInt(path []string) (uint64, bool) {
	if len(path) == 1 {
		v, ok := s.consts[resolve.NewIdKey(path[0])]
		return v, ok
	}
	v, ok := s.consts[resolve.IdKey(resolve.NewPathKey(path))]
	return v, ok
}
