// Package types implements C5/C6: the TypeRef model, canonical union
// ordering, subtyping, equivalence, and ConstLen.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Perm is a permission qualifier.
type Perm int

const (
	PermConst Perm = iota
	PermUnique
	PermShared
)

func (p Perm) String() string {
	switch p {
	case PermUnique:
		return "unique"
	case PermShared:
		return "shared"
	default:
		return "const"
	}
}

// PtrState is the tri-state provenance tag on a safe pointer type.
type PtrState int

const (
	PtrUnset PtrState = iota
	PtrValid
	PtrNull
	PtrExpired
)

func (s PtrState) String() string {
	switch s {
	case PtrValid:
		return "Valid"
	case PtrNull:
		return "Null"
	case PtrExpired:
		return "Expired"
	default:
		return ""
	}
}

// RawQual distinguishes unchecked-pointer mutability.
type RawQual int

const (
	RawImm RawQual = iota
	RawMut
)

// SBState is the shared state tag used by both String and Bytes.
type SBState int

const (
	SBUnset SBState = iota
	SBManaged
	SBView
)

func (s SBState) String() string {
	switch s {
	case SBManaged:
		return "Managed"
	case SBView:
		return "View"
	default:
		return ""
	}
}

// Kind tags the TypeRef variant.
type Kind int

const (
	KPrim Kind = iota
	KPerm
	KTuple
	KArray
	KSlice
	KFunc
	KUnion
	KPath
	KModalState
	KPtr
	KRawPtr
	KString
	KBytes
	KDynamic
	KOpaque
	KRefine
	KRange
)

// FuncParam is one parameter of a Func type: optional Move mode, or a
// reference parameter when Move is false.
type FuncParam struct {
	Move bool
	Type *TypeRef
}

// PredicateExpr is an opaque, comparable representation of a refinement
// predicate's syntactic structure, sufficient for the structural equality
// §4.6 requires between two Refine types. Analysis never evaluates it.
type PredicateExpr struct {
	Source string // canonical re-printed source text of the predicate
}

// TypeRef is the shared, immutable type tree described in §3. It is
// constructed exclusively through the smart constructors in this file,
// which are responsible for preserving every invariant in §3.
type TypeRef struct {
	Kind Kind

	// Prim
	PrimName string

	// Perm
	PermQual Perm
	Base     *TypeRef // Perm, Array, Slice, Ptr, RawPtr, Refine elem/base

	// Tuple
	Elems []*TypeRef

	// Array
	Length uint64

	// Func
	Params []FuncParam
	Ret    *TypeRef

	// Union
	Members []*TypeRef

	// Path / ModalState / Dynamic / Opaque
	Path         []string
	GenericArgs  []*TypeRef
	State        string // ModalState state name
	OriginSpan   string // Opaque identity component

	// Ptr
	PtrSt PtrState

	// RawPtr
	RawQ RawQual

	// String/Bytes
	SBSt SBState

	// Refine
	Predicate *PredicateExpr
}

// Prim constructs a primitive type reference from a closed-set name.
func Prim(name string) *TypeRef { return &TypeRef{Kind: KPrim, PrimName: name} }

// PermOf wraps base in a permission qualifier. Per invariant (ii), Perm
// never nests: wrapping an already-Perm base strips the old qualifier
// rather than nesting it, since only one permission layer is ever
// meaningful at a time.
func PermOf(p Perm, base *TypeRef) *TypeRef {
	if base != nil && base.Kind == KPerm {
		base = base.Base
	}
	return &TypeRef{Kind: KPerm, PermQual: p, Base: base}
}

// StripPerm returns the type beneath a single Perm layer (or t itself if
// t is not Perm), matching the "consumers strip at most one layer" rule.
func StripPerm(t *TypeRef) *TypeRef {
	if t != nil && t.Kind == KPerm {
		return t.Base
	}
	return t
}

// TupleOf constructs a tuple type.
func TupleOf(elems ...*TypeRef) *TypeRef { return &TypeRef{Kind: KTuple, Elems: elems} }

// ArrayOf constructs a fixed-length array type; length must already be a
// resolved u64 (via ConstLen).
func ArrayOf(elem *TypeRef, length uint64) *TypeRef {
	return &TypeRef{Kind: KArray, Base: elem, Length: length}
}

// SliceOf constructs a slice type.
func SliceOf(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KSlice, Base: elem} }

// FuncOf constructs a function type.
func FuncOf(params []FuncParam, ret *TypeRef) *TypeRef {
	return &TypeRef{Kind: KFunc, Params: params, Ret: ret}
}

// UnionOf constructs a normalized union: members are flattened (no nested
// unions), deduplicated, and sorted by TypeKey, per invariant (i). A
// one-member union collapses to that member.
func UnionOf(members ...*TypeRef) *TypeRef {
	flat := flattenUnion(members)
	flat = dedupByKey(flat)
	sort.Slice(flat, func(i, j int) bool { return TypeKeyOf(flat[i]) < TypeKeyOf(flat[j]) })
	if len(flat) == 1 {
		return flat[0]
	}
	return &TypeRef{Kind: KUnion, Members: flat}
}

func flattenUnion(ts []*TypeRef) []*TypeRef {
	var out []*TypeRef
	for _, t := range ts {
		if t == nil {
			continue
		}
		if t.Kind == KUnion {
			out = append(out, flattenUnion(t.Members)...)
		} else {
			out = append(out, t)
		}
	}
	return out
}

func dedupByKey(ts []*TypeRef) []*TypeRef {
	seen := map[string]bool{}
	var out []*TypeRef
	for _, t := range ts {
		k := TypeKeyOf(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}

// PathOf constructs a nominal reference to a record/enum/modal/class.
func PathOf(path []string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KPath, Path: path, GenericArgs: args}
}

// ModalStateOf constructs a concrete modal-state type `T@S`.
func ModalStateOf(path []string, state string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KModalState, Path: path, State: state, GenericArgs: args}
}

// PtrOf constructs a safe pointer type.
func PtrOf(elem *TypeRef, state PtrState) *TypeRef {
	return &TypeRef{Kind: KPtr, Base: elem, PtrSt: state}
}

// RawPtrOf constructs an unchecked pointer type.
func RawPtrOf(qual RawQual, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: KRawPtr, Base: elem, RawQ: qual}
}

// StringOf constructs the string type with the given managed/view state.
func StringOf(state SBState) *TypeRef { return &TypeRef{Kind: KString, SBSt: state} }

// BytesOf constructs the bytes type with the given managed/view state.
func BytesOf(state SBState) *TypeRef { return &TypeRef{Kind: KBytes, SBSt: state} }

// DynamicOf constructs a type-erased capability carrier.
func DynamicOf(classPath []string) *TypeRef { return &TypeRef{Kind: KDynamic, Path: classPath} }

// OpaqueOf constructs an identity-sealed nominal alias. Per invariant
// (iii), two Opaque types are equal iff both classPath and originSpan
// match — originSpan is the span's string form, serving as the identity
// component of the pair.
func OpaqueOf(classPath []string, originSpan string) *TypeRef {
	return &TypeRef{Kind: KOpaque, Path: classPath, OriginSpan: originSpan}
}

// RefineOf constructs a base type refined by a boolean predicate.
func RefineOf(base *TypeRef, pred *PredicateExpr) *TypeRef {
	return &TypeRef{Kind: KRefine, Base: base, Predicate: pred}
}

// RangeType is the singleton Range type.
var RangeType = &TypeRef{Kind: KRange}

// String renders a TypeRef for diagnostics and tests.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KPrim:
		return t.PrimName
	case KPerm:
		return fmt.Sprintf("%s %s", t.PermQual, t.Base)
	case KTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KArray:
		return fmt.Sprintf("[%s; %d]", t.Base, t.Length)
	case KSlice:
		return fmt.Sprintf("[%s]", t.Base)
	case KFunc:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			if p.Move {
				parts[i] = "move " + p.Type.String()
			} else {
				parts[i] = p.Type.String()
			}
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Ret)
	case KUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case KPath:
		return pathArgsString(t.Path, t.GenericArgs)
	case KModalState:
		return pathArgsString(t.Path, t.GenericArgs) + "@" + t.State
	case KPtr:
		if t.PtrSt == PtrUnset {
			return fmt.Sprintf("Ptr<%s>", t.Base)
		}
		return fmt.Sprintf("Ptr<%s>@%s", t.Base, t.PtrSt)
	case KRawPtr:
		q := "imm"
		if t.RawQ == RawMut {
			q = "mut"
		}
		return fmt.Sprintf("*%s %s", q, t.Base)
	case KString:
		if t.SBSt == SBUnset {
			return "string"
		}
		return "string@" + t.SBSt.String()
	case KBytes:
		if t.SBSt == SBUnset {
			return "bytes"
		}
		return "bytes@" + t.SBSt.String()
	case KDynamic:
		return "Dynamic<" + strings.Join(t.Path, "::") + ">"
	case KOpaque:
		return "Opaque<" + strings.Join(t.Path, "::") + ">"
	case KRefine:
		return fmt.Sprintf("%s where ...", t.Base)
	case KRange:
		return "Range"
	default:
		return "?"
	}
}

func pathArgsString(path []string, args []*TypeRef) string {
	base := strings.Join(path, "::")
	if len(args) == 0 {
		return base
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return base + "<" + strings.Join(parts, ", ") + ">"
}
