package types

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstLenLiteral(t *testing.T) {
	lit := &ast.Literal{Kind: ast.IntLit, Value: uint64(8)}
	n, d := ConstLen(lit, mapConstResolver{})
	require.Nil(t, d)
	assert.Equal(t, uint64(8), n)
}

func TestConstLenIdentLookup(t *testing.T) {
	r := mapConstResolver{"BUF_SIZE": 64}
	id := &ast.Ident{Name: "BUF_SIZE"}
	n, d := ConstLen(id, r)
	require.Nil(t, d)
	assert.Equal(t, uint64(64), n)
}

func TestConstLenRejectsNonConstant(t *testing.T) {
	expr := &ast.BinaryExpr{Op: "+", Left: &ast.Literal{Kind: ast.IntLit, Value: uint64(1)}, Right: &ast.Literal{Kind: ast.IntLit, Value: uint64(2)}}
	_, d := ConstLen(expr, mapConstResolver{})
	require.NotNil(t, d)
	assert.Equal(t, "E-SEM-0215", d.Code)
}

func TestLowerArrayType(t *testing.T) {
	at := &ast.ArrayType{
		Elem:    &ast.NamedType{Path: []string{"i32"}},
		LenExpr: &ast.Literal{Kind: ast.IntLit, Value: uint64(4)},
	}
	tr, errs := LowerTypeExpr(at, mapConstResolver{})
	require.Empty(t, errs)
	require.Equal(t, KArray, tr.Kind)
	assert.Equal(t, uint64(4), tr.Length)
}

func TestLowerUnionTypeNormalizes(t *testing.T) {
	ut := &ast.UnionType{Members: []ast.TypeExpr{
		&ast.NamedType{Path: []string{"bool"}},
		&ast.NamedType{Path: []string{"i32"}},
	}}
	tr, errs := LowerTypeExpr(ut, mapConstResolver{})
	require.Empty(t, errs)
	other, errs2 := LowerTypeExpr(&ast.UnionType{Members: []ast.TypeExpr{
		&ast.NamedType{Path: []string{"i32"}},
		&ast.NamedType{Path: []string{"bool"}},
	}}, mapConstResolver{})
	require.Empty(t, errs2)
	assert.True(t, TypeEquiv(tr, other))
}

func TestLowerPermTypeCollapsesNesting(t *testing.T) {
	pt := &ast.PermType{
		Perm: ast.PermShared,
		Base: &ast.PermType{Perm: ast.PermUnique, Base: &ast.NamedType{Path: []string{"i32"}}},
	}
	tr, errs := LowerTypeExpr(pt, mapConstResolver{})
	require.Empty(t, errs)
	assert.Equal(t, KPrim, tr.Base.Kind)
}
