package resolve

import "fmt"

// ResolveModulePathErr is returned when a `using` target path does not
// name a real project module.
type ResolveModulePathErr struct {
	Path PathKey
}

func (e *ResolveModulePathErr) Error() string {
	return fmt.Sprintf("no such module: %s", e.Path)
}

// ResolveUsingPathErr is returned when a `using path :: {name, ...}`
// selective import names something the target module does not export.
type ResolveUsingPathErr struct {
	Path PathKey
	Name IdKey
}

func (e *ResolveUsingPathErr) Error() string {
	return fmt.Sprintf("module %s does not export %s", e.Path, e.Name)
}

// VisibilityCallback decides whether a declaration in targetModule,
// tagged vis, is accessible from callerModule (§4.4, §4.9).
type VisibilityCallback func(targetModule, callerModule PathKey, vis VisTag) bool

// CanAccess is the default VisibilityCallback: public is always visible;
// internal is visible anywhere in the project (ScopeContext only ever
// sees project-internal callers, so this is equivalent to "same
// project"); protected is visible to the declaring module and every
// module nested under it (path-prefix match); private is visible only to the
// declaring module itself.
func CanAccess(targetModule, callerModule PathKey, vis VisTag) bool {
	switch vis {
	case VisPublic, VisInternal:
		return true
	case VisProtected:
		return targetModule == callerModule || hasModulePrefix(callerModule, targetModule)
	default: // VisPrivate
		return targetModule == callerModule
	}
}

func hasModulePrefix(callerModule, prefix PathKey) bool {
	cs, ps := string(callerModule), string(prefix)
	if len(cs) <= len(ps) {
		return false
	}
	return cs[:len(ps)] == ps && cs[len(ps)] == ':'
}

// ResolveQualified resolves `modulePath::name` (§4.4): it alias-expands the
// head component via ctx's active using-alias map, verifies the resulting
// module exists in sigma.Modules, locates the module's NameMap, looks up
// name there, and applies visibility against ctx's own module.
func ResolveQualified(ctx *ScopeContext, modulePath []string, name IdKey, can VisibilityCallback) (*Entity, error) {
	if len(modulePath) == 0 {
		return nil, fmt.Errorf("resolve: empty module path")
	}
	head := NewIdKey(modulePath[0])
	target := NewPathKey(modulePath)

	if aliases, ok := ctx.sigma.Aliases[ctx.module]; ok {
		if aliased, ok := aliases[head]; ok {
			if len(modulePath) == 1 {
				target = aliased
			} else {
				target = PathKey(string(aliased) + "::" + string(NewPathKey(modulePath[1:])))
			}
		}
	}

	if !ctx.sigma.Modules[target] {
		return nil, &ResolveModulePathErr{Path: target}
	}

	nm, ok := ctx.sigma.NameMaps[target]
	if !ok {
		return nil, &ResolveModulePathErr{Path: target}
	}
	e, ok := nm.Lookup(name)
	if !ok {
		return nil, &ResolveUsingPathErr{Path: target, Name: name}
	}

	if can == nil {
		can = CanAccess
	}
	vis := ctx.sigma.Visibility[target][name]
	if !can(target, ctx.module, vis) {
		return nil, fmt.Errorf("%s is not accessible from %s", name, ctx.module)
	}
	return e, nil
}
