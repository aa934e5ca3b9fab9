package cleanup

import "github.com/cursivelang/cursive0/internal/modal"

// managedBuiltins names the semantic types whose `Drop` is elided at this
// layer per §4.11: `string@Managed` and `bytes@Managed` have a trivial
// built-in drop and never resolve through a user `Drop` implementation.
var managedBuiltins = map[string]bool{
	"string@Managed": true,
	"bytes@Managed":  true,
}

// DropResolution is the outcome of resolving a binding's drop call: either
// it is elided (a managed string/bytes, or a type with no Drop at all,
// which is not an error — plenty of types simply have nothing to clean
// up), or it names the concrete method to invoke.
type DropResolution struct {
	Elided bool
	Method *modal.ClassMethod
}

// ResolveDrop looks up the `drop` method a binding's type must run at
// scope exit by calling modal.ResolveMethod for "drop" against ownMethods
// and the `Drop` class: an own method wins, otherwise the class default
// is used. typeKey is the binding's elision key (e.g. "string@Managed");
// a managed-builtin key always elides regardless of ownMethods, as do a
// nil dropClass and a type with no candidate at all.
func ResolveDrop(typeKey string, ownMethods map[string]*modal.ClassMethod, dropClass *modal.ClassTable) DropResolution {
	if managedBuiltins[typeKey] {
		return DropResolution{Elided: true}
	}
	if dropClass == nil {
		return DropResolution{Elided: true}
	}
	candidates := modal.ResolveMethod("drop", ownMethods, []*modal.ClassTable{dropClass})
	if len(candidates) == 0 {
		return DropResolution{Elided: true}
	}
	return DropResolution{Method: candidates[0]}
}
