package types

import (
	"fmt"
	"strings"
)

// TypeKeyOf produces a canonical string key used to sort and deduplicate
// union members (§3 invariant (i)) and to drive TypeEquiv, which compares
// these keys directly for every variant.
func TypeKeyOf(t *TypeRef) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KPrim:
		return "prim:" + t.PrimName
	case KPerm:
		return fmt.Sprintf("perm:%d:%s", t.PermQual, TypeKeyOf(t.Base))
	case KTuple:
		return "tuple:(" + joinKeys(t.Elems) + ")"
	case KArray:
		return fmt.Sprintf("array:%d:%s", t.Length, TypeKeyOf(t.Base))
	case KSlice:
		return "slice:" + TypeKeyOf(t.Base)
	case KFunc:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = fmt.Sprintf("%v:%s", p.Move, TypeKeyOf(p.Type))
		}
		return "func:(" + strings.Join(parts, ",") + ")->" + TypeKeyOf(t.Ret)
	case KUnion:
		return "union:{" + joinKeys(t.Members) + "}"
	case KPath:
		return "path:" + strings.Join(t.Path, "::") + "<" + joinKeys(t.GenericArgs) + ">"
	case KModalState:
		return "modal:" + strings.Join(t.Path, "::") + "@" + t.State + "<" + joinKeys(t.GenericArgs) + ">"
	case KPtr:
		return fmt.Sprintf("ptr:%d:%s", t.PtrSt, TypeKeyOf(t.Base))
	case KRawPtr:
		return fmt.Sprintf("rawptr:%d:%s", t.RawQ, TypeKeyOf(t.Base))
	case KString:
		return fmt.Sprintf("string:%d", t.SBSt)
	case KBytes:
		return fmt.Sprintf("bytes:%d", t.SBSt)
	case KDynamic:
		return "dynamic:" + strings.Join(t.Path, "::")
	case KOpaque:
		return "opaque:" + strings.Join(t.Path, "::") + "#" + t.OriginSpan
	case KRefine:
		pred := ""
		if t.Predicate != nil {
			pred = t.Predicate.Source
		}
		return "refine:" + TypeKeyOf(t.Base) + "|" + pred
	case KRange:
		return "range"
	default:
		return "?"
	}
}

func joinKeys(ts []*TypeRef) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = TypeKeyOf(t)
	}
	return strings.Join(parts, ",")
}
