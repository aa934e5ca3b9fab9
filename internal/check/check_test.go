package check

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/modal"
	"github.com/cursivelang/cursive0/internal/pattern"
	"github.com/cursivelang/cursive0/internal/resolve"
	"github.com/cursivelang/cursive0/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDecls struct {
	values  map[string]*types.TypeRef
	funcs   map[string]*FuncSig
	fields  map[string][]pattern.FieldSpec
	methods map[string][]*MethodSig
	dflt    map[string]bool
	modals  map[string]*modal.Spec
}

func newStub() *stubDecls {
	return &stubDecls{
		values:  map[string]*types.TypeRef{},
		funcs:   map[string]*FuncSig{},
		fields:  map[string][]pattern.FieldSpec{},
		methods: map[string][]*MethodSig{},
		dflt:    map[string]bool{},
		modals:  map[string]*modal.Spec{},
	}
}

func (s *stubDecls) EnumVariants([]string) ([]pattern.VariantSpec, bool) { return nil, false }
func (s *stubDecls) ModalStates([]string) ([]string, bool)               { return nil, false }
func (s *stubDecls) RecordFields(path []string) ([]pattern.FieldSpec, bool) {
	v, ok := s.fields[path[0]]
	return v, ok
}
func (s *stubDecls) ValueType(name resolve.IdKey) (*types.TypeRef, bool) {
	v, ok := s.values[string(name)]
	return v, ok
}
func (s *stubDecls) FuncSig(name resolve.IdKey) (*FuncSig, bool) {
	v, ok := s.funcs[string(name)]
	return v, ok
}
func (s *stubDecls) Methods(path []string, name string) ([]*MethodSig, bool) {
	v, ok := s.methods[path[0]+"."+name]
	return v, ok
}
func (s *stubDecls) DefaultConstructible(path []string) bool { return s.dflt[path[0]] }
func (s *stubDecls) ModalSpec(path []string) (*modal.Spec, bool) {
	v, ok := s.modals[path[0]]
	return v, ok
}

func newChecker(d *stubDecls) *Checker {
	universe := resolve.NewUniverse()
	sigma := resolve.NewSigma()
	ctx := resolve.NewScopeContext(resolve.PathKey("app"), sigma, universe)
	return New(d, ctx, &diag.Stream{}, noopConstLen{})
}

type noopConstLen struct{}

func (noopConstLen) ResolveConstInt([]string) (uint64, bool) { return 0, false }

func TestCheckLiteralTypes(t *testing.T) {
	c := newChecker(newStub())
	assert.True(t, types.TypeEquiv(c.CheckExpr(&ast.Literal{Kind: ast.IntLit}), types.Prim("i32")))
	assert.True(t, types.TypeEquiv(c.CheckExpr(&ast.Literal{Kind: ast.BoolLit}), types.Prim("bool")))
}

func TestCheckIdentUndefined(t *testing.T) {
	c := newChecker(newStub())
	got := c.CheckExpr(&ast.Ident{Name: "nope"})
	assert.True(t, types.TypeEquiv(got, types.NeverType))
	assert.True(t, c.Diags.HasErrors())
}

func TestCheckBinaryArithRequiresMatchingNumerics(t *testing.T) {
	c := newChecker(newStub())
	e := &ast.BinaryExpr{Op: "+", Left: &ast.Literal{Kind: ast.IntLit}, Right: &ast.Literal{Kind: ast.BoolLit}}
	got := c.CheckExpr(e)
	assert.True(t, types.TypeEquiv(got, types.NeverType))
	assert.True(t, c.Diags.HasErrors())
}

func TestCheckCallArgCountMismatch(t *testing.T) {
	d := newStub()
	d.funcs["f"] = &FuncSig{Params: []types.FuncParam{{Type: types.Prim("i32")}}, Ret: types.UnitType}
	c := newChecker(d)
	call := &ast.CallExpr{Callee: &ast.Ident{Name: "f"}, Args: nil}
	got := c.CheckExpr(call)
	assert.True(t, types.TypeEquiv(got, types.NeverType))
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, diag.ESemCallArgCount, c.Diags.All()[0].Code)
}

func TestCheckCallMoveMissing(t *testing.T) {
	d := newStub()
	d.funcs["f"] = &FuncSig{Params: []types.FuncParam{{Move: true, Type: types.Prim("i32")}}, Ret: types.UnitType}
	c := newChecker(d)
	call := &ast.CallExpr{Callee: &ast.Ident{Name: "f"}, Args: []ast.CallArg{{Value: &ast.Literal{Kind: ast.IntLit}, Move: false}}}
	c.CheckExpr(call)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, diag.ESemCallMoveMissing, c.Diags.All()[0].Code)
}

func TestCheckIfLUB(t *testing.T) {
	c := newChecker(newStub())
	ifE := &ast.IfExpr{
		Cond: &ast.Literal{Kind: ast.BoolLit},
		Then: &ast.BlockExpr{Tail: &ast.Literal{Kind: ast.IntLit}},
		Else: &ast.BlockExpr{Tail: &ast.Literal{Kind: ast.IntLit}},
	}
	got := c.CheckExpr(ifE)
	assert.True(t, types.TypeEquiv(got, types.Prim("i32")))
}

func TestCheckRecordLitMissingFieldNotDefaultConstructible(t *testing.T) {
	d := newStub()
	d.fields["Point"] = []pattern.FieldSpec{{Name: "x", Type: types.Prim("i32")}, {Name: "y", Type: types.Prim("i32")}}
	c := newChecker(d)
	lit := &ast.RecordLitExpr{TypeName: "Point", Fields: []ast.RecordFieldInit{{Name: "x", Value: &ast.Literal{Kind: ast.IntLit}}}}
	got := c.CheckExpr(lit)
	assert.True(t, types.TypeEquiv(got, types.NeverType))
	require.True(t, c.Diags.HasErrors())
}

func TestCheckRecordLitDefaultConstructibleAllowsOmission(t *testing.T) {
	d := newStub()
	d.fields["Point"] = []pattern.FieldSpec{{Name: "x", Type: types.Prim("i32")}, {Name: "y", Type: types.Prim("i32")}}
	d.dflt["Point"] = true
	c := newChecker(d)
	lit := &ast.RecordLitExpr{TypeName: "Point", Fields: []ast.RecordFieldInit{{Name: "x", Value: &ast.Literal{Kind: ast.IntLit}}}}
	got := c.CheckExpr(lit)
	assert.False(t, c.Diags.HasErrors())
	assert.Equal(t, types.KPath, got.Kind)
}

func TestCheckBreakOutsideLoopReported(t *testing.T) {
	c := newChecker(newStub())
	c.CheckExpr(&ast.BreakExpr{})
	assert.True(t, c.Diags.HasErrors())
}

func TestCheckLoopSuppressesBreakError(t *testing.T) {
	c := newChecker(newStub())
	loop := &ast.LoopExpr{Body: &ast.BlockExpr{Stmts: []ast.Stmt{&ast.ExprStmt{X: &ast.BreakExpr{}}}}}
	got := c.CheckExpr(loop)
	assert.False(t, c.Diags.HasErrors())
	assert.True(t, types.TypeEquiv(got, types.UnitType), "break without a value forces ()")
}

func TestCheckLoopTypeIsLUBOfBreakValues(t *testing.T) {
	c := newChecker(newStub())
	loop := &ast.LoopExpr{Body: &ast.BlockExpr{Stmts: []ast.Stmt{
		&ast.ExprStmt{X: &ast.BreakExpr{Value: &ast.Literal{Kind: ast.IntLit}}},
	}}}
	got := c.CheckExpr(loop)
	assert.False(t, c.Diags.HasErrors())
	assert.True(t, types.TypeEquiv(got, types.Prim("i32")))
}

func TestCheckLoopWithNoBreakIsNever(t *testing.T) {
	c := newChecker(newStub())
	loop := &ast.LoopExpr{Body: &ast.BlockExpr{Tail: &ast.Literal{Kind: ast.IntLit}}}
	got := c.CheckExpr(loop)
	assert.True(t, types.TypeEquiv(got, types.NeverType))
}

func TestCheckWidenAcceptsEligibleNicheTarget(t *testing.T) {
	d := newStub()
	d.modals["Conn"] = &modal.Spec{
		Path: []string{"Conn"},
		States: []modal.StateSpec{
			{Name: "Open", Fields: []pattern.FieldSpec{{Name: "fd", Type: types.PtrOf(types.Prim("i32"), types.PtrValid)}}},
			{Name: "Closed"},
		},
	}
	c := newChecker(d)
	d.values["c"] = types.ModalStateOf([]string{"Conn"}, "Open")
	w := &ast.WidenExpr{
		Value:  &ast.PathExpr{Segments: []string{"c"}},
		Target: &ast.ModalStateType{Path: []string{"Conn"}, State: "Open"},
	}
	got := c.CheckExpr(w)
	assert.False(t, c.Diags.HasErrors())
	assert.NotNil(t, got)
}

func TestCheckWidenRejectsUnregisteredModal(t *testing.T) {
	c := newChecker(newStub())
	c.Decls.(*stubDecls).values["c"] = types.ModalStateOf([]string{"Conn"}, "Open")
	w := &ast.WidenExpr{
		Value:  &ast.PathExpr{Segments: []string{"c"}},
		Target: &ast.ModalStateType{Path: []string{"Conn"}, State: "Open"},
	}
	got := c.CheckExpr(w)
	require.True(t, c.Diags.HasErrors())
	assert.True(t, types.TypeEquiv(got, types.NeverType))
}

func TestCheckAssignRejectsEscapingRegionProvenance(t *testing.T) {
	d := newStub()
	d.values["out"] = types.PtrOf(types.Prim("i32"), types.PtrValid)
	d.values["p"] = types.PtrOf(types.Prim("i32"), types.PtrValid)
	c := newChecker(d)
	block := &ast.RegionExpr{
		Alias: "r",
		Body: &ast.BlockExpr{
			Stmts: []ast.Stmt{
				&ast.LetStmt{Pattern: &ast.IdentPattern{Name: "p"}, Init: &ast.AllocExpr{Value: &ast.Literal{Kind: ast.IntLit}, Region: "r"}},
				&ast.AssignStmt{Lhs: &ast.PathExpr{Segments: []string{"out"}}, Rhs: &ast.Ident{Name: "p"}},
			},
		},
	}
	c.CheckExpr(block)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, diag.ProvEscapeErr, c.Diags.All()[len(c.Diags.All())-1].Code)
}

func TestCheckAsyncRejectsStackCapture(t *testing.T) {
	d := newStub()
	d.values["x"] = types.Prim("i32")
	c := newChecker(d)
	a := &ast.AsyncExpr{Args: []ast.Expr{&ast.PathExpr{Segments: []string{"x"}}}}
	c.CheckExpr(a)
	require.True(t, c.Diags.HasErrors())
	assert.Equal(t, diag.AsyncCaptureErr, c.Diags.All()[0].Code)
}
