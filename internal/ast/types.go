package ast

import (
	"fmt"
	"strings"
)

// NamedType is a nominal reference, e.g. `Foo::Bar<T>`.
type NamedType struct {
	Path []string
	Args []TypeExpr
	Pos  Pos
}

func (n *NamedType) Position() Pos { return n.Pos }
func (n *NamedType) String() string {
	base := strings.Join(n.Path, "::")
	if len(n.Args) == 0 {
		return base
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", base, strings.Join(parts, ", "))
}
func (n *NamedType) typeNode() {}

// PermKind is the AST spelling of a permission qualifier.
type PermKind int

const (
	PermConst PermKind = iota
	PermUnique
	PermShared
)

// PermType is `const T` / `unique T` / `shared T`.
type PermType struct {
	Perm PermKind
	Base TypeExpr
	Pos  Pos
}

func (p *PermType) Position() Pos  { return p.Pos }
func (p *PermType) String() string { return fmt.Sprintf("perm(%s)", p.Base) }
func (p *PermType) typeNode()      {}

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Elems []TypeExpr
	Pos   Pos
}

func (t *TupleType) Position() Pos { return t.Pos }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) typeNode() {}

// ArrayType is `[T; lenExpr]`; lenExpr is lowered via ConstLen (§4.5/§4.6).
type ArrayType struct {
	Elem    TypeExpr
	LenExpr Expr
	Pos     Pos
}

func (a *ArrayType) Position() Pos  { return a.Pos }
func (a *ArrayType) String() string { return fmt.Sprintf("[%s; %s]", a.Elem, a.LenExpr) }
func (a *ArrayType) typeNode()      {}

// SliceType is `[T]`.
type SliceType struct {
	Elem TypeExpr
	Pos  Pos
}

func (s *SliceType) Position() Pos  { return s.Pos }
func (s *SliceType) String() string { return fmt.Sprintf("[%s]", s.Elem) }
func (s *SliceType) typeNode()      {}

// FuncParamType is one parameter in a function type, with optional `move`.
type FuncParamType struct {
	Move bool
	Type TypeExpr
}

// FuncType is `(params) -> ret`.
type FuncType struct {
	Params []FuncParamType
	Ret    TypeExpr
	Pos    Pos
}

func (f *FuncType) Position() Pos { return f.Pos }
func (f *FuncType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Move {
			parts[i] = "move " + p.Type.String()
		} else {
			parts[i] = p.Type.String()
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Ret)
}
func (f *FuncType) typeNode() {}

// UnionType is `A | B | C`.
type UnionType struct {
	Members []TypeExpr
	Pos     Pos
}

func (u *UnionType) Position() Pos { return u.Pos }
func (u *UnionType) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
func (u *UnionType) typeNode() {}

// PtrKind is the AST spelling of a safe-pointer state annotation.
type PtrKind int

const (
	PtrUnset PtrKind = iota
	PtrValid
	PtrNull
	PtrExpired
)

// PtrType is `Ptr<T>[@State]`.
type PtrType struct {
	Elem  TypeExpr
	State PtrKind
	Pos   Pos
}

func (p *PtrType) Position() Pos  { return p.Pos }
func (p *PtrType) String() string { return fmt.Sprintf("Ptr<%s>", p.Elem) }
func (p *PtrType) typeNode()      {}

// RawPtrQual distinguishes `*imm T` from `*mut T`.
type RawPtrQual int

const (
	RawImm RawPtrQual = iota
	RawMut
)

// RawPtrType is `*imm T` / `*mut T`.
type RawPtrType struct {
	Qual RawPtrQual
	Elem TypeExpr
	Pos  Pos
}

func (r *RawPtrType) Position() Pos  { return r.Pos }
func (r *RawPtrType) String() string { return fmt.Sprintf("*%s", r.Elem) }
func (r *RawPtrType) typeNode()      {}

// StringBytesState is the shared state tag for `string`/`bytes`.
type StringBytesState int

const (
	SBUnset StringBytesState = iota
	SBManaged
	SBView
)

// StringType is `string[@State]`.
type StringType struct {
	State StringBytesState
	Pos   Pos
}

func (s *StringType) Position() Pos  { return s.Pos }
func (s *StringType) String() string { return "string" }
func (s *StringType) typeNode()      {}

// BytesType is `bytes[@State]`.
type BytesType struct {
	State StringBytesState
	Pos   Pos
}

func (b *BytesType) Position() Pos  { return b.Pos }
func (b *BytesType) String() string { return "bytes" }
func (b *BytesType) typeNode()      {}

// ModalStateType is `T@State`.
type ModalStateType struct {
	Path  []string
	State string
	Args  []TypeExpr
	Pos   Pos
}

func (m *ModalStateType) Position() Pos { return m.Pos }
func (m *ModalStateType) String() string {
	return fmt.Sprintf("%s@%s", strings.Join(m.Path, "::"), m.State)
}
func (m *ModalStateType) typeNode() {}

// DynamicType is `Dynamic<class_path>`.
type DynamicType struct {
	ClassPath []string
	Pos       Pos
}

func (d *DynamicType) Position() Pos  { return d.Pos }
func (d *DynamicType) String() string { return "Dynamic<" + strings.Join(d.ClassPath, "::") + ">" }
func (d *DynamicType) typeNode()      {}

// RefineType is `T where predicate`.
type RefineType struct {
	Base      TypeExpr
	Predicate Expr
	Pos       Pos
}

func (r *RefineType) Position() Pos  { return r.Pos }
func (r *RefineType) String() string { return fmt.Sprintf("%s where %s", r.Base, r.Predicate) }
func (r *RefineType) typeNode()      {}

// RangeTypeExpr is the `Range` built-in type reference.
type RangeTypeExpr struct {
	Pos Pos
}

func (r *RangeTypeExpr) Position() Pos  { return r.Pos }
func (r *RangeTypeExpr) String() string { return "Range" }
func (r *RangeTypeExpr) typeNode()      {}
