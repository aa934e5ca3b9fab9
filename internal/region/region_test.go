package region

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapBindProv map[string]Tag

func (m mapBindProv) ProvOf(name string) (Tag, bool) {
	t, ok := m[name]
	return t, ok
}

func TestProvLeqBottomBeneathEverything(t *testing.T) {
	assert.True(t, ProvLeq(Bottom, Global))
	assert.True(t, ProvLeq(Bottom, Stack))
	assert.True(t, ProvLeq(Bottom, RegionTag("r")))
}

func TestProvLeqReflexive(t *testing.T) {
	assert.True(t, ProvLeq(RegionTag("r"), RegionTag("r")))
	assert.False(t, ProvLeq(RegionTag("r"), RegionTag("s")))
}

func TestJoinBottomYieldsOther(t *testing.T) {
	j, ok := Join(Bottom, Global)
	require.True(t, ok)
	assert.Equal(t, Global, j)
}

func TestJoinDisagreementFails(t *testing.T) {
	_, ok := Join(RegionTag("r"), RegionTag("s"))
	assert.False(t, ok)
}

func TestStackOutlivesNestedFrames(t *testing.T) {
	s := NewStack()
	s.Push("outer")
	s.Push("inner")
	assert.True(t, s.Outlives("outer", "inner"))
	assert.False(t, s.Outlives("inner", "outer"))
	assert.True(t, s.Active("inner"))
	s.Pop()
	assert.False(t, s.Active("inner"))
}

func TestCheckAssignmentRejectsShorterLived(t *testing.T) {
	s := NewStack()
	s.Push("outer")
	s.Push("inner")
	d := CheckAssignment(s, RegionTag("outer"), RegionTag("inner"))
	require.NotNil(t, d)
	assert.Equal(t, "Prov-0301", d.Code)
}

func TestCheckAssignmentAllowsOutlivingValue(t *testing.T) {
	s := NewStack()
	s.Push("outer")
	s.Push("inner")
	d := CheckAssignment(s, RegionTag("inner"), RegionTag("outer"))
	assert.Nil(t, d)
}

func TestCheckAssignmentAllowsGlobal(t *testing.T) {
	s := NewStack()
	d := CheckAssignment(s, RegionTag("r"), Global)
	assert.Nil(t, d)
}

func TestCheckAsyncCaptureRejectsStack(t *testing.T) {
	d := CheckAsyncCapture(Stack)
	require.NotNil(t, d)
	assert.Equal(t, "Async-0401", d.Code)
}

func TestCheckAsyncCaptureRejectsRegion(t *testing.T) {
	d := CheckAsyncCapture(RegionTag("r"))
	require.NotNil(t, d)
	assert.Equal(t, "Prov-0302", d.Code)
}

func TestCheckAsyncCaptureAllowsGlobal(t *testing.T) {
	assert.Nil(t, CheckAsyncCapture(Global))
}

func TestProvExprIdentUsesBinding(t *testing.T) {
	binds := mapBindProv{"x": RegionTag("r")}
	got := ProvExpr(&ast.Ident{Name: "x"}, NewStack(), binds)
	assert.Equal(t, RegionTag("r"), got)
}

func TestProvExprFieldInheritsBase(t *testing.T) {
	binds := mapBindProv{"x": RegionTag("r")}
	fe := &ast.FieldExpr{Base: &ast.Ident{Name: "x"}, Field: "f"}
	got := ProvExpr(fe, NewStack(), binds)
	assert.Equal(t, RegionTag("r"), got)
}

func TestProvExprAllocUsesExplicitRegion(t *testing.T) {
	got := ProvExpr(&ast.AllocExpr{Region: "r"}, NewStack(), mapBindProv{})
	assert.Equal(t, RegionTag("r"), got)
}

func TestProvExprAllocUsesCurrentFrame(t *testing.T) {
	s := NewStack()
	s.Push("r")
	got := ProvExpr(&ast.AllocExpr{}, s, mapBindProv{})
	assert.Equal(t, RegionTag("r"), got)
}
