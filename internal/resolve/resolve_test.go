package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdKeyNFCEquality(t *testing.T) {
	// "café" as precomposed vs combining-accent forms must be the same IdKey.
	precomposed := NewIdKey("café")
	decomposed := NewIdKey("café")
	assert.Equal(t, precomposed, decomposed)
}

func TestIdKeyIdempotent(t *testing.T) {
	once := NewIdKey("café")
	twice := NewIdKey(string(once))
	assert.Equal(t, once, twice)
}

func TestReservedIdent(t *testing.T) {
	assert.True(t, IsReservedIdent("cursive"))
	assert.True(t, IsReservedIdent("gen_foo"))
	assert.False(t, IsReservedIdent("foo"))
	assert.True(t, IsReservedPath([]string{"foo", "gen_bar"}))
}

func TestLookupShadowingDoesNotPeekPastWrongKind(t *testing.T) {
	universe := NewUniverse()
	sigma := NewSigma()
	ctx := NewScopeContext(PathKey("app"), sigma, universe)

	typeName := NewIdKey("x")
	ctx.ModuleTop().Bind(typeName, &Entity{Kind: KindType, Name: typeName, Source: SourceDecl})

	ctx.Push()
	ctx.Bind(typeName, &Entity{Kind: KindValue, Name: typeName, Source: SourceDecl})

	// Innermost binding is a value, so type-kind lookup must fail even
	// though a type named "x" exists further out.
	_, ok := ResolveTypeName(ctx, typeName)
	assert.False(t, ok)

	_, ok = ResolveValueName(ctx, typeName)
	assert.True(t, ok)
	ctx.Pop()

	// After popping back out, type resolution succeeds again.
	_, ok = ResolveTypeName(ctx, typeName)
	assert.True(t, ok)
}

func TestUniverseLookup(t *testing.T) {
	universe := NewUniverse()
	sigma := NewSigma()
	ctx := NewScopeContext(PathKey("app"), sigma, universe)

	e, ok := ResolveTypeName(ctx, NewIdKey("i32"))
	require.True(t, ok)
	assert.Equal(t, KindType, e.Kind)

	_, ok = ResolveClassName(ctx, NewIdKey("Drop"))
	assert.True(t, ok)
}

func TestCollectNameMapConflict(t *testing.T) {
	a := &Entity{Kind: KindValue, Name: NewIdKey("f"), Module: PathKey("a"), Source: SourceDecl}
	b := &Entity{Kind: KindValue, Name: NewIdKey("f"), Module: PathKey("b"), Source: SourceUsing}
	nm, conflicts := CollectNameMap([]*Entity{a}, []*Entity{b})
	require.Len(t, conflicts, 1)
	got, ok := nm.Lookup(NewIdKey("f"))
	require.True(t, ok)
	assert.Equal(t, a, got) // own declaration wins, conflict still reported
}

func TestResolveQualifiedVisibility(t *testing.T) {
	sigma := NewSigma()
	target := PathKey("math::gcd")
	sigma.Modules[target] = true
	nm := NewNameMap()
	fnName := NewIdKey("compute")
	fnEntity := &Entity{Kind: KindValue, Name: fnName, Module: target, Source: SourceDecl}
	nm.entries[fnName] = fnEntity
	sigma.NameMaps[target] = nm
	sigma.Visibility[target] = map[IdKey]VisTag{fnName: VisPrivate}

	universe := NewUniverse()
	callerCtx := NewScopeContext(PathKey("app"), sigma, universe)

	_, err := ResolveQualified(callerCtx, []string{"math", "gcd"}, fnName, nil)
	assert.Error(t, err, "private declarations must not be visible cross-module")

	sigma.Visibility[target] = map[IdKey]VisTag{fnName: VisPublic}
	e, err := ResolveQualified(callerCtx, []string{"math", "gcd"}, fnName, nil)
	require.NoError(t, err)
	assert.Equal(t, fnEntity, e)
}

func TestResolveQualifiedAliasExpansion(t *testing.T) {
	sigma := NewSigma()
	target := PathKey("math::gcd")
	sigma.Modules[target] = true
	nm := NewNameMap()
	fnName := NewIdKey("compute")
	sigma.NameMaps[target] = nm
	nm.entries[fnName] = &Entity{Kind: KindValue, Name: fnName, Module: target, Source: SourceDecl}
	sigma.Visibility[target] = map[IdKey]VisTag{fnName: VisPublic}
	sigma.Aliases[PathKey("app")] = map[IdKey]PathKey{NewIdKey("g"): target}

	universe := NewUniverse()
	callerCtx := NewScopeContext(PathKey("app"), sigma, universe)

	_, err := ResolveQualified(callerCtx, []string{"g"}, fnName, nil)
	require.NoError(t, err)
}

func TestResolveQualifiedUnknownModule(t *testing.T) {
	sigma := NewSigma()
	universe := NewUniverse()
	ctx := NewScopeContext(PathKey("app"), sigma, universe)
	_, err := ResolveQualified(ctx, []string{"nope"}, NewIdKey("x"), nil)
	require.Error(t, err)
	var modErr *ResolveModulePathErr
	assert.ErrorAs(t, err, &modErr)
}
