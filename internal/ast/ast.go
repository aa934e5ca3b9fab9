// Package ast defines the tagged-variant syntax tree Cursive0's analysis
// core consumes (C3). Construction of these trees is the parser's job and
// is out of scope here (§1); this package only defines the node shapes and
// the span/position machinery every node carries.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Pos is a single point in source text.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// Span is a half-open range in source text. Every node's span is derived
// from source text; spans are never synthesized (§3).
type Span struct {
	Start Pos
	End   Pos
}

// Item is the base interface for top-level declarations.
type Item interface {
	Node
	itemNode()
}

// Expr is the base interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the base interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is the base interface for AST-level (unlowered) type syntax.
type TypeExpr interface {
	Node
	typeNode()
}

// Pattern is the base interface for pattern nodes.
type Pattern interface {
	Node
	patternNode()
}

// File is a single parsed source file.
type File struct {
	Module *ModuleDecl
	Usings []*UsingDecl
	Items  []Item
	Path   string
	Pos    Pos
}

func (f *File) Position() Pos { return f.Pos }
func (f *File) String() string {
	var parts []string
	if f.Module != nil {
		parts = append(parts, f.Module.String())
	}
	for _, u := range f.Usings {
		parts = append(parts, u.String())
	}
	for _, it := range f.Items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, "\n")
}

// ModuleDecl declares the module path a file belongs to.
type ModuleDecl struct {
	Path []string
	Pos  Pos
	Span Span
}

func (m *ModuleDecl) Position() Pos  { return m.Pos }
func (m *ModuleDecl) String() string { return "module " + strings.Join(m.Path, "::") }

// UsingImport is a single `name [as alias]` inside a `using path :: {..}`
// group, or the whole target of a bare `using path [as alias]`.
type UsingImport struct {
	Name  string
	Alias string // empty if no rename
}

// UsingDecl is a `using path [as alias]` or `using path :: {a, b as c}`.
type UsingDecl struct {
	Path    []string
	Alias   string        // module alias, for the bare form
	Imports []UsingImport // selective imports, empty for the bare module-alias form
	Pos     Pos
	Span    Span
}

func (u *UsingDecl) Position() Pos { return u.Pos }
func (u *UsingDecl) String() string {
	base := "using " + strings.Join(u.Path, "::")
	if u.Alias != "" {
		base += " as " + u.Alias
	}
	if len(u.Imports) > 0 {
		names := make([]string, len(u.Imports))
		for i, imp := range u.Imports {
			if imp.Alias != "" {
				names[i] = imp.Name + " as " + imp.Alias
			} else {
				names[i] = imp.Name
			}
		}
		base += " :: {" + strings.Join(names, ", ") + "}"
	}
	return base
}

// Visibility is the declared accessibility of an item.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisProtected
	VisInternal
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisInternal:
		return "internal"
	case VisProtected:
		return "protected"
	default:
		return "private"
	}
}
