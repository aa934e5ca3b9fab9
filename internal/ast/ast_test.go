package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleDeclString(t *testing.T) {
	m := &ModuleDecl{Path: []string{"foo", "bar"}}
	assert.Equal(t, "module foo::bar", m.String())
}

func TestUsingDeclString(t *testing.T) {
	u := &UsingDecl{
		Path: []string{"std", "io"},
		Imports: []UsingImport{
			{Name: "a"},
			{Name: "b", Alias: "c"},
		},
	}
	assert.Equal(t, "using std::io :: {a, b as c}", u.String())
}

func TestVisibilityString(t *testing.T) {
	assert.Equal(t, "public", VisPublic.String())
	assert.Equal(t, "private", VisPrivate.String())
}

func TestCallExprString(t *testing.T) {
	c := &CallExpr{
		Callee: &Ident{Name: "take"},
		Args:   []CallArg{{Value: &Ident{Name: "x"}, Move: true}},
	}
	assert.Equal(t, "take(x)", c.String())
}

func TestAssignStmtString(t *testing.T) {
	a := &AssignStmt{Lhs: &Ident{Name: "out"}, Rhs: &Ident{Name: "p"}}
	assert.Equal(t, "out = p", a.String())
}

func TestRecordPatternString(t *testing.T) {
	p := &RecordPattern{
		TypeName: "Point",
		Fields:   []*FieldPattern{{Name: "x", Pattern: &IdentPattern{Name: "x"}}},
		Rest:     true,
	}
	assert.Equal(t, "Point { x: x, .. }", p.String())
}
