// Package typedir assembles the typed-IR boundary artifact C11 and C12
// hand off to code generation: each module's checked declarations
// together with its resolved drop plan and the project's init order —
// codegen's input, never mutated once built.
package typedir

import (
	"fmt"
	"strings"

	"github.com/cursivelang/cursive0/internal/cleanup"
	"github.com/cursivelang/cursive0/internal/types"
)

// DeclKind tags what a TypedDecl represents.
type DeclKind int

const (
	DeclProcedure DeclKind = iota
	DeclStatic
	DeclRecord
	DeclEnum
	DeclModal
	DeclClass
)

func (k DeclKind) String() string {
	switch k {
	case DeclProcedure:
		return "procedure"
	case DeclStatic:
		return "static"
	case DeclRecord:
		return "record"
	case DeclEnum:
		return "enum"
	case DeclModal:
		return "modal"
	case DeclClass:
		return "class"
	default:
		return "unknown"
	}
}

// TypedDecl is one fully-checked top-level declaration, resolved down to
// a concrete TypeRef — never an unresolved name.
type TypedDecl struct {
	Name string
	Kind DeclKind
	Type *types.TypeRef
}

func (d TypedDecl) String() string {
	return fmt.Sprintf("%s %s: %s", d.Kind, d.Name, d.Type)
}

// TypedModule is one module's complete analysis output.
type TypedModule struct {
	Path     string
	Decls    []TypedDecl
	DropPlan []cleanup.DropStep
	Statics  []cleanup.StaticBinding
}

// Program is the complete typed-IR artifact for an assembly: every
// module in initialization order, plus the poison set computed for each
// module that can fail to initialize.
type Program struct {
	Modules    []TypedModule
	InitOrder  []string
	PoisonSets map[string][]string
}

// FindModule looks up a module by path.
func (p *Program) FindModule(path string) (*TypedModule, bool) {
	for i := range p.Modules {
		if p.Modules[i].Path == path {
			return &p.Modules[i], true
		}
	}
	return nil, false
}

// Pretty renders a Program as an indented textual dump, mirroring the
// teacher's own typed-IR pretty-printer shape — useful for golden tests
// and the `--emit-ir` debug flag, never for diagnostics (which render
// through internal/diag instead).
func Pretty(p *Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program(\n")
	for _, mod := range p.Modules {
		fmt.Fprintf(&b, "  module %s {\n", mod.Path)
		for _, d := range mod.Decls {
			fmt.Fprintf(&b, "    %s\n", d)
		}
		for _, step := range mod.DropPlan {
			if step.PartialFields == nil {
				fmt.Fprintf(&b, "    drop %s\n", step.Name)
			} else {
				fmt.Fprintf(&b, "    drop %s.%v\n", step.Name, step.PartialFields)
			}
		}
		fmt.Fprintf(&b, "  }\n")
	}
	fmt.Fprintf(&b, ")")
	return b.String()
}
