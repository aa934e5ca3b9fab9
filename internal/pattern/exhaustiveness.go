package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/types"
)

// DecisionTree is a compiled match plan: a Leaf (some arm matches), a Fail
// (no arm matches — the missing-case witness for a non-exhaustive match),
// or a Switch on the scrutinee's constructor tag.
type DecisionTree interface {
	isDecisionTree()
}

// LeafNode names the first arm (by index) that matches.
type LeafNode struct{ ArmIndex int }

func (*LeafNode) isDecisionTree() {}

// FailNode marks an uncovered case; Tag is the constructor that led here,
// empty for an uncovered open/unbounded scrutinee (e.g. an un-wildcarded
// integer).
type FailNode struct{ Tag string }

func (*FailNode) isDecisionTree() {}

// SwitchNode dispatches on the scrutinee's constructor tag (a variant
// name, a modal state name, "true"/"false", or the single "_" tag used
// for tuple/record/open-scalar scrutinees).
type SwitchNode struct {
	Cases   map[string]DecisionTree
	Default DecisionTree // reached by a catch-all (wildcard/ident/typed) row
}

func (*SwitchNode) isDecisionTree() {}

// Compile builds a decision tree over pats against scrutinee. It does not
// evaluate guards: a guarded arm is treated as if it might fail, so it
// never counts toward exhaustiveness on its own — exactly as §4.7
// requires (a guard can always decline to run).
func Compile(scrutinee *types.TypeRef, pats []ast.Pattern, guarded []bool, tt TypeTable) DecisionTree {
	return compileRows(scrutinee, rowsOf(pats, guarded), tt)
}

type row struct {
	pat     ast.Pattern
	arm     int
	guarded bool
}

func rowsOf(pats []ast.Pattern, guarded []bool) []row {
	rows := make([]row, len(pats))
	for i, p := range pats {
		g := false
		if i < len(guarded) {
			g = guarded[i]
		}
		rows[i] = row{pat: p, arm: i, guarded: g}
	}
	return rows
}

func compileRows(scrutinee *types.TypeRef, rows []row, tt TypeTable) DecisionTree {
	for _, r := range rows {
		if isCatchAll(r.pat) && !r.guarded {
			return &LeafNode{ArmIndex: r.arm}
		}
	}
	required, closed := requiredTags(scrutinee, tt)
	if !closed {
		// Open scrutinee (int/char/string/float): only a catch-all closes
		// it, and none survived above, so whatever isn't guarded is a gap.
		if len(rows) == 0 {
			return &FailNode{}
		}
		return &SwitchNode{Cases: map[string]DecisionTree{}, Default: &FailNode{}}
	}

	cases := map[string]DecisionTree{}
	for _, tag := range required {
		matched := false
		for _, r := range rows {
			if r.guarded {
				continue
			}
			if tagOf(r.pat) == tag {
				cases[tag] = &LeafNode{ArmIndex: r.arm}
				matched = true
				break
			}
		}
		if !matched {
			cases[tag] = &FailNode{Tag: tag}
		}
	}
	return &SwitchNode{Cases: cases}
}

// IsExhaustive reports whether every value of scrutinee is matched by
// some unguarded arm in pats, returning a diagnostic naming one missing
// case when it is not.
func IsExhaustive(scrutinee *types.TypeRef, pats []ast.Pattern, guarded []bool, tt TypeTable) (bool, *diag.Diagnostic) {
	tree := Compile(scrutinee, pats, guarded, tt)
	if missing, ok := firstFail(tree); ok {
		msg := "match is not exhaustive"
		if missing != "" {
			msg = fmt.Sprintf("match is not exhaustive: missing case %q", missing)
		}
		return false, &diag.Diagnostic{Code: diag.ESemExhaustiveness, Severity: diag.SeverityError, Message: msg}
	}
	return true, nil
}

func firstFail(t DecisionTree) (string, bool) {
	switch n := t.(type) {
	case *FailNode:
		return n.Tag, true
	case *SwitchNode:
		tags := make([]string, 0, len(n.Cases))
		for tag := range n.Cases {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			if m, ok := firstFail(n.Cases[tag]); ok {
				if m == "" {
					return tag, true
				}
				return m, true
			}
		}
		if n.Default != nil {
			return firstFail(n.Default)
		}
		return "", false
	default:
		return "", false
	}
}

func isCatchAll(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern, *ast.TypedPattern:
		return true
	default:
		return false
	}
}

func tagOf(p ast.Pattern) string {
	switch v := p.(type) {
	case *ast.LiteralPattern:
		if v.Lit.Kind == ast.BoolLit {
			if b, ok := v.Lit.Value.(bool); ok {
				return fmt.Sprintf("%v", b)
			}
		}
		return ""
	case *ast.VariantPattern:
		return v.Variant
	case *ast.ModalStatePattern:
		return v.State
	default:
		return ""
	}
}

// requiredTags returns the finite tag set a scrutinee type must be
// switched over, and whether the type is closed (finite) at all. Integer,
// float, string, and char scrutinees are open — only a catch-all pattern
// can make a match over them exhaustive.
func requiredTags(t *types.TypeRef, tt TypeTable) ([]string, bool) {
	t = types.StripPerm(t)
	if t == nil {
		return nil, false
	}
	switch t.Kind {
	case types.KPrim:
		if t.PrimName == "bool" {
			return []string{"true", "false"}, true
		}
		return nil, false
	case types.KPath:
		if vs, ok := tt.EnumVariants(t.Path); ok {
			names := make([]string, len(vs))
			for i, v := range vs {
				names[i] = v.Name
			}
			return names, true
		}
		return nil, false
	case types.KModalState:
		if states, ok := tt.ModalStates(t.Path); ok {
			return states, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// MissingVariantsSummary renders the set of enum variants/modal states a
// match omits, for a richer diagnostic message than the single-case form
// IsExhaustive produces.
func MissingVariantsSummary(scrutinee *types.TypeRef, pats []ast.Pattern, tt TypeTable) string {
	required, closed := requiredTags(scrutinee, tt)
	if !closed {
		return ""
	}
	covered := map[string]bool{}
	for _, p := range pats {
		if tag := tagOf(p); tag != "" {
			covered[tag] = true
		}
	}
	var missing []string
	for _, r := range required {
		if !covered[r] {
			missing = append(missing, r)
		}
	}
	return strings.Join(missing, ", ")
}
