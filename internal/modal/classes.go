package modal

import (
	"fmt"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/resolve"
	"github.com/cursivelang/cursive0/internal/types"
)

// ClassMethod is one method entry in a class's interface: its receiver
// permission requirement, signature, and whether it carries a default
// body (callers fall back to the default only when the implementing type
// provides no override).
type ClassMethod struct {
	Name       string
	Recv       types.Perm
	Params     []types.FuncParam
	Ret        *types.TypeRef
	HasDefault bool
}

// ClassTable is a lowered `class` declaration: its own required methods
// plus the methods inherited from its Supers, already flattened so
// lookup never needs to walk the super chain at use sites.
type ClassTable struct {
	Name    string
	Methods map[string]*ClassMethod
	Supers  []string
}

// BuildClassTable lowers one ClassDecl. supers supplies already-built
// tables for decl.Supers, so a class's own method set can inherit theirs;
// an own method with the same name as an inherited one overrides it.
func BuildClassTable(decl *ast.ClassDecl, resolver types.ConstLenResolver, supers map[string]*ClassTable) (*ClassTable, []diag.Diagnostic) {
	var errs []diag.Diagnostic
	ct := &ClassTable{Name: decl.Name, Methods: map[string]*ClassMethod{}, Supers: decl.Supers}

	for _, superName := range decl.Supers {
		super, ok := supers[superName]
		if !ok {
			errs = append(errs, diag.Diagnostic{
				Code:     diag.EResUnknownName,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("class %q requires unknown super class %q", decl.Name, superName),
			})
			continue
		}
		for name, m := range super.Methods {
			ct.Methods[name] = m
		}
	}

	for _, m := range decl.Methods {
		params := make([]types.FuncParam, len(m.Params))
		for i, p := range m.Params {
			pt, pe := types.LowerTypeExpr(p.Type, resolver)
			errs = append(errs, pe...)
			params[i] = types.FuncParam{Move: p.Move, Type: pt}
		}
		ret, re := types.LowerTypeExpr(m.Ret, resolver)
		errs = append(errs, re...)
		ct.Methods[m.Name] = &ClassMethod{
			Name:       m.Name,
			Recv:       recvPerm(m.Receiver),
			Params:     params,
			Ret:        ret,
			HasDefault: m.Default != nil,
		}
	}
	return ct, errs
}

func recvPerm(sigil string) types.Perm {
	switch sigil {
	case "~!":
		return types.PermUnique
	case "~%":
		return types.PermShared
	default:
		return types.PermConst
	}
}

// ImplementsCheck verifies that a type's own method set, together with
// class-supplied defaults, satisfies every method a claimed `implements`
// class requires. Missing methods without a class default are reported;
// a type providing its own override for a defaulted method is always
// fine.
func ImplementsCheck(typeName string, ownMethods map[string]bool, class *ClassTable) []diag.Diagnostic {
	var errs []diag.Diagnostic
	for name, m := range class.Methods {
		if ownMethods[name] {
			continue
		}
		if m.HasDefault {
			continue
		}
		errs = append(errs, diag.Diagnostic{
			Code:     diag.EResUnknownName,
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("%q does not implement required method %q of class %q", typeName, name, class.Name),
		})
	}
	return errs
}

// ResolveMethod looks up method name for a receiver of typePath, first
// among ownMethods (methods declared directly on the record/enum/modal),
// then falling back to each implemented class's default — collecting
// every viable candidate so the caller (internal/check) can apply its own
// receiver-permission filtering and ambiguity diagnostic uniformly with
// plain own-method resolution.
func ResolveMethod(name string, ownSigs map[string]*ClassMethod, implemented []*ClassTable) []*ClassMethod {
	if m, ok := ownSigs[name]; ok {
		return []*ClassMethod{m}
	}
	var out []*ClassMethod
	for _, ct := range implemented {
		if m, ok := ct.Methods[name]; ok && m.HasDefault {
			out = append(out, m)
		}
	}
	return out
}

// VisibleClasses filters candidateClasses down to those visible from
// callerModule, using the same visibility semantics internal/resolve
// applies to ordinary qualified lookups.
func VisibleClasses(candidateClasses []*ClassTable, classModules map[string]resolve.PathKey, classVis map[string]resolve.VisTag, callerModule resolve.PathKey, can resolve.VisibilityCallback) []*ClassTable {
	if can == nil {
		can = resolve.CanAccess
	}
	var out []*ClassTable
	for _, ct := range candidateClasses {
		mod := classModules[ct.Name]
		vis := classVis[ct.Name]
		if can(mod, callerModule, vis) {
			out = append(out, ct)
		}
	}
	return out
}
