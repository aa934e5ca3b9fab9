package resolve

// Sigma is the read-only typed global environment: per-module declaration
// tables built once during the collect phase and never mutated during the
// check phase (§3, §5).
type Sigma struct {
	// Modules lists every module path known to the project, for
	// ResolveQualified's module-existence check.
	Modules map[PathKey]bool

	// NameMaps holds each module's exported-name table, built by
	// CollectNameMap.
	NameMaps map[PathKey]*NameMap

	// Aliases holds each module's `using` alias map (alias -> target
	// module path), used to alias-expand the head of a qualified path.
	Aliases map[PathKey]map[IdKey]PathKey

	// Visibility maps a (module, name) pair to its declared visibility
	// tag, consulted by CanAccess.
	Visibility map[PathKey]map[IdKey]VisTag
}

// VisTag mirrors ast.Visibility without importing the ast package, to
// keep resolve free of a dependency on the syntax layer.
type VisTag int

const (
	VisPrivate VisTag = iota
	VisProtected
	VisInternal
	VisPublic
)

// NewSigma creates an empty Sigma ready for collection.
func NewSigma() *Sigma {
	return &Sigma{
		Modules:    map[PathKey]bool{},
		NameMaps:   map[PathKey]*NameMap{},
		Aliases:    map[PathKey]map[IdKey]PathKey{},
		Visibility: map[PathKey]map[IdKey]VisTag{},
	}
}

// ScopeContext carries the three-layer scope stack (innermost
// function/module scope, module-top scope, universe), the current module
// path, and a read-only Sigma.
type ScopeContext struct {
	stack    []*Scope // innermost last
	module   PathKey
	universe *Scope
	sigma    *Sigma
}

// NewScopeContext creates a context for analyzing module, seeded with the
// universe and a fresh module-top scope.
func NewScopeContext(module PathKey, sigma *Sigma, universe *Scope) *ScopeContext {
	return &ScopeContext{
		stack:    []*Scope{NewScope()}, // module-top scope
		module:   module,
		universe: universe,
		sigma:    sigma,
	}
}

// Module returns the module path this context is analyzing.
func (c *ScopeContext) Module() PathKey { return c.module }

// Sigma returns the read-only global environment.
func (c *ScopeContext) Sigma() *Sigma { return c.sigma }

// Push introduces a fresh innermost scope (block/loop/arm/proc-body entry).
func (c *ScopeContext) Push() {
	c.stack = append(c.stack, NewScope())
}

// Pop discards the innermost scope (block/loop/arm/proc-body exit). It
// panics if called with only the module-top scope remaining — callers
// must balance every Push with a Pop.
func (c *ScopeContext) Pop() {
	if len(c.stack) <= 1 {
		panic("resolve: Pop without matching Push (module-top scope is not poppable)")
	}
	c.stack = c.stack[:len(c.stack)-1]
}

// Bind introduces name -> e into the innermost scope.
func (c *ScopeContext) Bind(name IdKey, e *Entity) {
	c.stack[len(c.stack)-1].Bind(name, e)
}

// ModuleTop returns the module-top scope (index 0), for binding top-level
// declarations and using-imports.
func (c *ScopeContext) ModuleTop() *Scope {
	return c.stack[0]
}
