// Package modal implements C9: modal state declarations as constructor
// families, niche-widening checks, and class/dictionary-style method
// tables.
package modal

import (
	"fmt"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/pattern"
	"github.com/cursivelang/cursive0/internal/types"
)

// StateSpec is one lowered modal state: its fields and the method names
// it declares directly (before class-default fallback).
type StateSpec struct {
	Name    string
	Fields  []pattern.FieldSpec
	Methods map[string]bool
}

// TransitionSpec is one lowered `~!`-style transition, acting as the
// constructor for the target state.
type TransitionSpec struct {
	Name   string
	From   string // originating state name; Build leaves it empty
	Target string
	Params []types.FuncParam
}

// Spec is a fully lowered modal type: every state plus every transition
// between them, keyed by the modal type's own path.
type Spec struct {
	Path        []string
	States      []StateSpec
	Transitions []TransitionSpec
	Implements  []string
}

// StateNames returns every state name, satisfying the pattern.TypeTable
// ModalStates contract.
func (s *Spec) StateNames() []string {
	out := make([]string, len(s.States))
	for i, st := range s.States {
		out[i] = st.Name
	}
	return out
}

// Build lowers a parsed ModalDecl into a Spec, reporting malformed field
// types and duplicate state names as diagnostics.
func Build(decl *ast.ModalDecl, path []string, resolver types.ConstLenResolver) (*Spec, []diag.Diagnostic) {
	var errs []diag.Diagnostic
	spec := &Spec{Path: path, Implements: decl.Implements}

	seen := map[string]bool{}
	for _, st := range decl.States {
		if seen[st.Name] {
			errs = append(errs, diag.Diagnostic{
				Code:     diag.EModDuplicate,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("modal %q declares state %q more than once", decl.Name, st.Name),
			})
			continue
		}
		seen[st.Name] = true

		fields := make([]pattern.FieldSpec, len(st.Fields))
		for i, f := range st.Fields {
			ft, fe := types.LowerTypeExpr(f.Type, resolver)
			errs = append(errs, fe...)
			fields[i] = pattern.FieldSpec{Name: f.Name, Type: ft}
		}
		methods := map[string]bool{}
		for _, m := range st.Methods {
			methods[m.Name] = true
		}
		spec.States = append(spec.States, StateSpec{Name: st.Name, Fields: fields, Methods: methods})
	}

	for _, tr := range decl.Transitions {
		if !seen[tr.Target] {
			errs = append(errs, diag.Diagnostic{
				Code:     diag.EResUnknownName,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("transition %q targets unknown state %q", tr.Name, tr.Target),
			})
			continue
		}
		params := make([]types.FuncParam, len(tr.Params))
		for i, p := range tr.Params {
			pt, pe := types.LowerTypeExpr(p.Type, resolver)
			errs = append(errs, pe...)
			params[i] = types.FuncParam{Move: p.Move, Type: pt}
		}
		spec.Transitions = append(spec.Transitions, TransitionSpec{Name: tr.Name, Target: tr.Target, Params: params})
	}

	return spec, errs
}

// TransitionSig reports the `T@Target` type the named transition
// produces, and whether the transition exists. The returned FuncParam is
// always the zero value; the declared params are in Transitions[i].Params.
func (s *Spec) TransitionSig(name string) (types.FuncParam, *types.TypeRef, bool) {
	for _, tr := range s.Transitions {
		if tr.Name == name {
			return types.FuncParam{}, types.ModalStateOf(s.Path, tr.Target), true
		}
	}
	return types.FuncParam{}, nil, false
}

// nicheEligible checks §4.9 conditions (i) and (ii): exactly one state
// carries a single-field payload of type Ptr<U>@Valid, and every other
// state is empty (no fields). Both shapes that satisfy this are exactly
// one pointer wide, so condition (iii) — size and alignment match — is
// implied by (i)/(ii) rather than checked separately, since this
// bootstrap core has no independent layout/sizing pass.
func (s *Spec) nicheEligible() bool {
	ptrStates := 0
	for _, st := range s.States {
		switch len(st.Fields) {
		case 0:
			continue
		case 1:
			f := st.Fields[0].Type
			if f == nil || f.Kind != types.KPtr || f.PtrSt != types.PtrValid {
				return false
			}
			ptrStates++
		default:
			return false
		}
	}
	return ptrStates == 1
}

// WidenTarget checks §4.9's niche-widening rule: a `widen` is only valid
// when the source modal type is niche-eligible (nicheEligible) and the
// target names a state (or union of states) that actually exists on it —
// a wider supertype like a union of several of T's own states is the
// caller's responsibility to construct via types.UnionOf over
// ModalStateOf values, since Spec alone has no notion of "all states but
// one".
func (s *Spec) WidenTarget(fromState string, target *types.TypeRef) bool {
	if !s.nicheEligible() {
		return false
	}
	switch target.Kind {
	case types.KModalState:
		for _, st := range s.States {
			if st.Name == target.State {
				return true
			}
		}
		return false
	case types.KUnion:
		for _, m := range target.Members {
			if m.Kind == types.KModalState {
				for _, st := range s.States {
					if st.Name == m.State {
						return true
					}
				}
			}
		}
		return false
	default:
		return false
	}
}

// NicheWidenErr reports §4.9's WF-Niche-Err: the source modal type must
// satisfy the niche encoding and the target must name at least one state
// that actually exists on it.
func NicheWidenErr(spec *Spec, fromState string, target *types.TypeRef) *diag.Diagnostic {
	if spec.WidenTarget(fromState, target) {
		return nil
	}
	return &diag.Diagnostic{
		Code:     diag.ESemNicheWiden,
		Severity: diag.SeverityError,
		Message:  fmt.Sprintf("widen target %s names no eligible niche state of %s", target, spec.Path),
	}
}
