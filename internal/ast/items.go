package ast

import "strings"

// Param is a single function/procedure parameter.
type Param struct {
	Name string
	Move bool // explicit `move` mode; unset means by-reference
	Type TypeExpr
	Pos  Pos
}

// ProcDecl is a `procedure name(params) -> ret { body }` declaration.
type ProcDecl struct {
	Name       string
	Generics   []string
	Params     []*Param
	Ret        TypeExpr
	Body       *BlockExpr
	Visibility Visibility
	Pos        Pos
	Span       Span
}

func (p *ProcDecl) Position() Pos  { return p.Pos }
func (p *ProcDecl) String() string { return "procedure " + p.Name }
func (p *ProcDecl) itemNode()      {}

// FieldDecl is a single record/state field.
type FieldDecl struct {
	Name    string
	Type    TypeExpr
	Default Expr // optional default initializer
	Pos     Pos
}

// RecordDecl is a `record Name { fields }` declaration.
type RecordDecl struct {
	Name       string
	Generics   []string
	Fields     []*FieldDecl
	Methods    []*ProcDecl
	Implements []string // class paths this record implements
	Visibility Visibility
	Pos        Pos
	Span       Span
}

func (r *RecordDecl) Position() Pos  { return r.Pos }
func (r *RecordDecl) String() string { return "record " + r.Name }
func (r *RecordDecl) itemNode()      {}

// EnumVariant is a single enum case, optionally carrying named payload
// fields (as opposed to positional tuple payloads).
type EnumVariant struct {
	Name   string
	Fields []*FieldDecl
	Pos    Pos
}

// EnumDecl is an `enum Name { variants }` declaration.
type EnumDecl struct {
	Name       string
	Generics   []string
	Variants   []*EnumVariant
	Methods    []*ProcDecl
	Implements []string
	Visibility Visibility
	Pos        Pos
	Span       Span
}

func (e *EnumDecl) Position() Pos  { return e.Pos }
func (e *EnumDecl) String() string { return "enum " + e.Name }
func (e *EnumDecl) itemNode()      {}

// ModalStateDecl is one state of a modal type, with its own fields and
// methods.
type ModalStateDecl struct {
	Name    string
	Fields  []*FieldDecl
	Methods []*ProcDecl
	Pos     Pos
}

// ModalTransition declares a transition from the enclosing state to
// Target, acting as a `~!` constructor for `T@Target`.
type ModalTransition struct {
	Name   string
	Target string
	Params []*Param
	Body   *BlockExpr
	Pos    Pos
}

// ModalDecl is a `modal Name { states }` declaration.
type ModalDecl struct {
	Name        string
	Generics    []string
	States      []*ModalStateDecl
	Transitions []*ModalTransition
	Implements  []string
	Visibility  Visibility
	Pos         Pos
	Span        Span
}

func (m *ModalDecl) Position() Pos  { return m.Pos }
func (m *ModalDecl) String() string { return "modal " + m.Name }
func (m *ModalDecl) itemNode()      {}

// ClassMethodSig is a single required (or defaulted) method signature in a
// class declaration.
type ClassMethodSig struct {
	Name     string
	Receiver string // "~" const, "~!" unique, "~%" shared
	Params   []*Param
	Ret      TypeExpr
	Default  *BlockExpr // non-nil for a default implementation
	Pos      Pos
}

// ClassDecl is a `class Name { methods }` interface declaration.
type ClassDecl struct {
	Name       string
	Generics   []string
	Methods    []*ClassMethodSig
	Supers     []string // classes this class itself requires
	Visibility Visibility
	Pos        Pos
	Span       Span
}

func (c *ClassDecl) Position() Pos  { return c.Pos }
func (c *ClassDecl) String() string { return "class " + c.Name }
func (c *ClassDecl) itemNode()      {}

// StaticDecl is a top-level `static let name: T = expr`.
type StaticDecl struct {
	Name       string
	Type       TypeExpr
	Init       Expr
	Visibility Visibility
	Pos        Pos
	Span       Span
}

func (s *StaticDecl) Position() Pos  { return s.Pos }
func (s *StaticDecl) String() string { return "static let " + s.Name }
func (s *StaticDecl) itemNode()      {}

func joinGenerics(gs []string) string {
	if len(gs) == 0 {
		return ""
	}
	return "<" + strings.Join(gs, ", ") + ">"
}
