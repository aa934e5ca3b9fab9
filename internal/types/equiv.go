package types

// TypeEquiv decides structural equivalence per §4.6: two types are
// equivalent when their TypeKey strings match, with one coinductive
// exception — a Union is equivalent to any permutation of the same
// member set, which UnionOf already normalizes away by sorting members
// at construction, so straightforward key comparison is sound for every variant,
// including the Opaque identity-pair and Refine predicate-text cases.
func TypeEquiv(a, b *TypeRef) bool {
	return TypeKeyOf(a) == TypeKeyOf(b)
}

// EquivSet reports whether every type in a set is pairwise equivalent to
// ts[0]; used by callers checking that branches of a control construct
// produce the same type (e.g. both sides of an if-expression before the
// subtyping LUB is attempted).
func EquivSet(ts []*TypeRef) bool {
	if len(ts) == 0 {
		return true
	}
	first := TypeKeyOf(ts[0])
	for _, t := range ts[1:] {
		if TypeKeyOf(t) != first {
			return false
		}
	}
	return true
}
