package resolve

// Lookup searches the scope stack innermost-out, then the universe, and
// returns the first matching entity (§4.4).
func Lookup(ctx *ScopeContext, name IdKey) (*Entity, bool) {
	for i := len(ctx.stack) - 1; i >= 0; i-- {
		if e, ok := ctx.stack[i].Get(name); ok {
			return e, true
		}
	}
	return ctx.universe.Get(name)
}

// resolveKind performs Lookup, returning ok=false if the innermost match
// is of the wrong kind. Kind-restricted lookups never peek past a
// shadowing binding to find a match of the right kind further out — a
// value `x` shadowing a type `x` makes `x` unresolvable as a type in that
// scope, exactly as §4.4 specifies.
func resolveKind(ctx *ScopeContext, name IdKey, want EntityKind) (*Entity, bool) {
	e, ok := Lookup(ctx, name)
	if !ok || e.Kind != want {
		return nil, false
	}
	return e, true
}

// ResolveValueName resolves name as a value entity.
func ResolveValueName(ctx *ScopeContext, name IdKey) (*Entity, bool) {
	return resolveKind(ctx, name, KindValue)
}

// ResolveTypeName resolves name as a type entity.
func ResolveTypeName(ctx *ScopeContext, name IdKey) (*Entity, bool) {
	return resolveKind(ctx, name, KindType)
}

// ResolveClassName resolves name as a class entity.
func ResolveClassName(ctx *ScopeContext, name IdKey) (*Entity, bool) {
	return resolveKind(ctx, name, KindClass)
}

// ResolveModuleName resolves name as a module-alias entity.
func ResolveModuleName(ctx *ScopeContext, name IdKey) (*Entity, bool) {
	return resolveKind(ctx, name, KindModuleAlias)
}
