package types

// NeverType is the bottom type `!`: it is a subtype of every type, and no
// value of it is ever actually produced (every expression of type `!`
// diverges).
var NeverType = Prim("never")

// UnitType is the unit type `unit`.
var UnitType = Prim("unit")

func isNever(t *TypeRef) bool { return t != nil && t.Kind == KPrim && t.PrimName == "never" }

// Subtype decides whether sub <: sup per §4.6's lattice:
//   - `!` is a subtype of everything.
//   - Equivalent types are subtypes of each other (reflexivity).
//   - Perm<p1, B1> <: Perm<p2, B2> iff p1 <= p2 in Unique <: Shared <: Const
//     and B1 <: B2 (permission widening only ever loosens, never the base).
//   - A Refine<B, _> forgets its predicate upward: Refine<B,_> <: B, and
//     Refine<B,pred> <: Refine<B,pred> only under full equivalence (no
//     predicate-to-predicate subtyping is attempted).
//   - A union member is a subtype of any union containing an equivalent
//     member (widening into the union); the reverse only holds when the
//     subunion's members are all present in the superunion.
//   - Ptr<E, Valid> <: Ptr<E, Unset> (erasing provenance state loses
//     information, so only the seen-valid direction widens); Null and
//     Expired do not widen to Valid or to each other.
//   - Opaque types never participate in subtyping beyond reflexivity: two
//     Opaque types are related only when TypeEquiv holds.
//   - All other variants require TypeEquiv (tuples/arrays/slices/funcs are
//     invariant in their components; §4.6 does not specify variance for
//     them beyond identity).
func Subtype(sub, sup *TypeRef) bool {
	if sub == nil || sup == nil {
		return sub == sup
	}
	if isNever(sub) {
		return true
	}
	if TypeEquiv(sub, sup) {
		return true
	}

	if sub.Kind == KPerm && sup.Kind == KPerm {
		return permLeq(sub.PermQual, sup.PermQual) && Subtype(sub.Base, sup.Base)
	}
	if sub.Kind == KPerm {
		return Subtype(sub.Base, sup)
	}

	if sub.Kind == KRefine {
		if sup.Kind == KRefine {
			return TypeEquiv(sub, sup)
		}
		return Subtype(sub.Base, sup)
	}

	if sup.Kind == KUnion {
		for _, m := range sup.Members {
			if Subtype(sub, m) {
				return true
			}
		}
		if sub.Kind == KUnion {
			for _, sm := range sub.Members {
				if !subtypeOfAny(sm, sup.Members) {
					return false
				}
			}
			return len(sub.Members) > 0
		}
		return false
	}
	if sub.Kind == KUnion {
		// A union is a subtype of a non-union only if every member is.
		for _, m := range sub.Members {
			if !Subtype(m, sup) {
				return false
			}
		}
		return len(sub.Members) > 0
	}

	if sub.Kind == KPtr && sup.Kind == KPtr {
		if !Subtype(sub.Base, sup.Base) && !TypeEquiv(sub.Base, sup.Base) {
			return false
		}
		if sub.PtrSt == sup.PtrSt {
			return true
		}
		return sub.PtrSt == PtrValid && sup.PtrSt == PtrUnset
	}

	return false
}

func permLeq(a, b Perm) bool {
	rank := map[Perm]int{PermUnique: 0, PermShared: 1, PermConst: 2}
	return rank[a] <= rank[b]
}

func subtypeOfAny(t *TypeRef, candidates []*TypeRef) bool {
	for _, c := range candidates {
		if Subtype(t, c) {
			return true
		}
	}
	return false
}

// LUB computes the least upper bound of a set of branch types for
// constructs like if/match where every arm must unify to one type: `!`
// contributes nothing (a diverging arm imposes no constraint), and the
// remaining types are combined into a normalized union. internal/check
// uses the result as the construct's type unchanged, so arms of
// non-equivalent types give a union type and no diagnostic.
func LUB(ts []*TypeRef) *TypeRef {
	var live []*TypeRef
	for _, t := range ts {
		if !isNever(t) {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return NeverType
	}
	u := UnionOf(live...)
	return u
}
