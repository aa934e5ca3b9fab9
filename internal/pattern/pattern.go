// Package pattern implements C7: pattern typing, binding extraction, and
// match exhaustiveness.
package pattern

import (
	"fmt"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/types"
)

// Binding is one name introduced by a pattern, with its bound type.
type Binding struct {
	Name string
	Type *types.TypeRef
}

// FieldSpec describes one field of a record or variant payload, as seen
// by pattern typing and exhaustiveness.
type FieldSpec struct {
	Name string
	Type *types.TypeRef
}

// VariantSpec describes one enum variant: its positional payload types
// (for tuple-style variants) or named fields (for record-style ones).
type VariantSpec struct {
	Name   string
	Elems  []*types.TypeRef
	Fields []FieldSpec
}

// TypeTable is the subset of the project's declaration table pattern
// typing needs: enum variant shapes, modal state names, and record field
// shapes. internal/check supplies the real implementation backed by its
// declaration table.
type TypeTable interface {
	EnumVariants(path []string) ([]VariantSpec, bool)
	ModalStates(path []string) ([]string, bool)
	RecordFields(path []string) ([]FieldSpec, bool)
}

// TypePattern type-checks pat against the expected scrutinee type,
// returning the bindings it introduces. It does not check exhaustiveness
// (see IsExhaustive) — that is a property of the whole arm set, not of one
// pattern.
func TypePattern(pat ast.Pattern, expected *types.TypeRef, tt TypeTable) ([]Binding, []diag.Diagnostic) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return nil, nil

	case *ast.IdentPattern:
		return []Binding{{Name: p.Name, Type: expected}}, nil

	case *ast.LiteralPattern:
		lt := literalType(p.Lit)
		if !types.TypeEquiv(lt, expected) && !types.Subtype(lt, expected) {
			return nil, []diag.Diagnostic{mismatch(p.Pos, expected, lt)}
		}
		return nil, nil

	case *ast.RangePattern:
		// §9 resolution: range patterns are restricted to integer and char
		// scrutinees; the bounds themselves are typed by internal/check's
		// constant folder and are not re-validated here.
		if !isIntOrChar(expected) {
			return nil, []diag.Diagnostic{{
				Code:     diag.ESemRangePatternType,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("range pattern requires an integer or char scrutinee, found %s", expected),
			}}
		}
		return nil, nil

	case *ast.TuplePattern:
		base := types.StripPerm(expected)
		if base.Kind != types.KTuple || len(base.Elems) != len(p.Elems) {
			return nil, []diag.Diagnostic{mismatch(p.Pos, expected, nil)}
		}
		var binds []Binding
		var errs []diag.Diagnostic
		for i, sub := range p.Elems {
			b, e := TypePattern(sub, base.Elems[i], tt)
			binds = append(binds, b...)
			errs = append(errs, e...)
		}
		return binds, errs

	case *ast.RecordPattern:
		fields, ok := tt.RecordFields(pathOf(p.TypeName))
		if !ok {
			return nil, []diag.Diagnostic{unknownType(p.Pos, p.TypeName)}
		}
		return typeFieldPatterns(p.Fields, fields, p.Rest, p.Pos, tt)

	case *ast.VariantPattern:
		variants, ok := tt.EnumVariants(pathOf(p.TypeName))
		if !ok {
			return nil, []diag.Diagnostic{unknownType(p.Pos, p.TypeName)}
		}
		var vs *VariantSpec
		for i := range variants {
			if variants[i].Name == p.Variant {
				vs = &variants[i]
				break
			}
		}
		if vs == nil {
			return nil, []diag.Diagnostic{{
				Code:     diag.EResUnknownName,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("%s has no variant %q", p.TypeName, p.Variant),
			}}
		}
		if len(p.Elems) > 0 {
			if len(p.Elems) != len(vs.Elems) {
				return nil, []diag.Diagnostic{mismatch(p.Pos, nil, nil)}
			}
			var binds []Binding
			var errs []diag.Diagnostic
			for i, sub := range p.Elems {
				b, e := TypePattern(sub, vs.Elems[i], tt)
				binds = append(binds, b...)
				errs = append(errs, e...)
			}
			return binds, errs
		}
		return typeFieldPatterns(p.Fields, vs.Fields, false, p.Pos, tt)

	case *ast.ModalStatePattern:
		states, ok := tt.ModalStates(pathOf(p.TypeName))
		if !ok {
			return nil, []diag.Diagnostic{unknownType(p.Pos, p.TypeName)}
		}
		found := false
		for _, s := range states {
			if s == p.State {
				found = true
				break
			}
		}
		if !found {
			return nil, []diag.Diagnostic{{
				Code:     diag.EResUnknownName,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("%s has no state %q", p.TypeName, p.State),
			}}
		}
		fields, _ := tt.RecordFields(pathOf(p.TypeName))
		return typeFieldPatterns(p.Fields, fields, true, p.Pos, tt)

	case *ast.TypedPattern:
		annotated, errs := types.LowerTypeExpr(p.Type, noConstLen{})
		if !types.Subtype(annotated, expected) && !types.TypeEquiv(annotated, expected) {
			errs = append(errs, mismatch(p.Pos, expected, annotated))
		}
		return []Binding{{Name: p.Name, Type: annotated}}, errs

	default:
		return nil, []diag.Diagnostic{{
			Code:     diag.ESemTypeMismatch,
			Severity: diag.SeverityError,
			Message:  "unrecognized pattern form",
		}}
	}
}

// PatNames returns every name pat binds, in left-to-right order, without
// computing their types — used by callers that only need to check for
// duplicate bindings within one pattern.
func PatNames(pat ast.Pattern) []string {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		return []string{p.Name}
	case *ast.TypedPattern:
		return []string{p.Name}
	case *ast.TuplePattern:
		var out []string
		for _, e := range p.Elems {
			out = append(out, PatNames(e)...)
		}
		return out
	case *ast.RecordPattern:
		var out []string
		for _, f := range p.Fields {
			out = append(out, PatNames(f.Pattern)...)
		}
		return out
	case *ast.VariantPattern:
		var out []string
		for _, e := range p.Elems {
			out = append(out, PatNames(e)...)
		}
		for _, f := range p.Fields {
			out = append(out, PatNames(f.Pattern)...)
		}
		return out
	case *ast.ModalStatePattern:
		var out []string
		for _, f := range p.Fields {
			out = append(out, PatNames(f.Pattern)...)
		}
		return out
	default:
		return nil
	}
}

func typeFieldPatterns(pats []*ast.FieldPattern, specs []FieldSpec, rest bool, pos ast.Pos, tt TypeTable) ([]Binding, []diag.Diagnostic) {
	byName := map[string]*types.TypeRef{}
	for _, s := range specs {
		byName[s.Name] = s.Type
	}
	var binds []Binding
	var errs []diag.Diagnostic
	seen := map[string]bool{}
	for _, fp := range pats {
		ft, ok := byName[fp.Name]
		if !ok {
			errs = append(errs, unknownType(pos, fp.Name))
			continue
		}
		seen[fp.Name] = true
		b, e := TypePattern(fp.Pattern, ft, tt)
		binds = append(binds, b...)
		errs = append(errs, e...)
	}
	if !rest && len(seen) != len(specs) {
		errs = append(errs, diag.Diagnostic{
			Code:     diag.ESemTypeMismatch,
			Severity: diag.SeverityError,
			Message:  "record pattern omits fields without a trailing `..`",
		})
	}
	return binds, errs
}

func literalType(l *ast.Literal) *types.TypeRef {
	switch l.Kind {
	case ast.IntLit:
		if l.Suffix != "" {
			return types.Prim(l.Suffix)
		}
		return types.Prim("i32")
	case ast.FloatLit:
		return types.Prim("f64")
	case ast.StringLit:
		return types.StringOf(types.SBManaged)
	case ast.ByteLit:
		return types.BytesOf(types.SBManaged)
	case ast.BoolLit:
		return types.Prim("bool")
	case ast.CharLit:
		return types.Prim("char")
	default:
		return types.UnitType
	}
}

func isIntOrChar(t *types.TypeRef) bool {
	t = types.StripPerm(t)
	if t.Kind != types.KPrim {
		return false
	}
	switch t.PrimName {
	case "char":
		return true
	default:
		return intPrims[t.PrimName]
	}
}

var intPrims = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
}

func pathOf(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}

func mismatch(pos ast.Pos, expected, got *types.TypeRef) diag.Diagnostic {
	msg := "pattern does not match the expected type"
	if expected != nil && got != nil {
		msg = fmt.Sprintf("pattern has type %s, expected %s", got, expected)
	}
	return diag.Diagnostic{Code: diag.ESemTypeMismatch, Severity: diag.SeverityError, Message: msg}
}

func unknownType(pos ast.Pos, name string) diag.Diagnostic {
	return diag.Diagnostic{
		Code:     diag.EResUnknownName,
		Severity: diag.SeverityError,
		Message:  fmt.Sprintf("unknown type %q", name),
	}
}

// noConstLen resolves no named constant: in a TypedPattern annotation an
// array length given as an identifier or path fails to lower with
// E-SEM-0215, while a literal length lowers normally.
type noConstLen struct{}

func (noConstLen) ResolveConstInt([]string) (uint64, bool) { return 0, false }
