// Package check implements C8: expression type-checking — the dispatcher
// that drives literals, places, calls, method resolution, control-flow
// typing, and the unsafe coercions, against the TypeRef/pattern/resolve
// foundations built by the earlier components.
package check

import (
	"fmt"

	"github.com/cursivelang/cursive0/internal/ast"
	"github.com/cursivelang/cursive0/internal/cleanup"
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/modal"
	"github.com/cursivelang/cursive0/internal/pattern"
	"github.com/cursivelang/cursive0/internal/region"
	"github.com/cursivelang/cursive0/internal/resolve"
	"github.com/cursivelang/cursive0/internal/types"
)

// FuncSig is a callable signature: parameter modes/types plus return type.
type FuncSig struct {
	Params []types.FuncParam
	Ret    *types.TypeRef
}

// MethodSig extends FuncSig with the receiver permission a method
// requires (§4.9's receiver-permission compatibility rule).
type MethodSig struct {
	Recv   types.Perm
	Params []types.FuncParam
	Ret    *types.TypeRef
}

// DeclTable is the declaration surface check needs beyond pattern typing:
// value/function signatures, method tables, and default-constructibility.
// internal/pipeline wires the real project-wide implementation; tests use
// a map-backed stub.
type DeclTable interface {
	pattern.TypeTable
	ValueType(name resolve.IdKey) (*types.TypeRef, bool)
	FuncSig(name resolve.IdKey) (*FuncSig, bool)
	Methods(typePath []string, name string) ([]*MethodSig, bool)
	DefaultConstructible(path []string) bool
	ModalSpec(path []string) (*modal.Spec, bool)
}

// Checker carries the mutable state threaded through one function body's
// expression type-checking pass.
type Checker struct {
	Decls        DeclTable
	Scope        *resolve.ScopeContext
	Diags        *diag.Stream
	ConstLen     types.ConstLenResolver
	loopDepth    int
	breakTypes   [][]*types.TypeRef // one slice per enclosing loop, innermost last
	Region       *region.Stack      // the active region/frame environment Π (§4.10)
	provOf       map[string]region.Tag
	frameCounter int

	// DropPlan accumulates every block's §4.11 scope-exit cleanup steps,
	// in the order their blocks were left (innermost first), as this
	// Checker walks a function body.
	DropPlan      []cleanup.DropStep
	bindings      map[string]*cleanup.Binding
	bindingTypes  map[string]*types.TypeRef
	scopeBindings [][]*cleanup.Binding // one slice per open block, mirroring Scope.Push/Pop
}

// New creates a Checker over decls/scope, reporting into diags.
func New(decls DeclTable, scope *resolve.ScopeContext, diags *diag.Stream, constLen types.ConstLenResolver) *Checker {
	return &Checker{
		Decls:        decls,
		Scope:        scope,
		Diags:        diags,
		ConstLen:     constLen,
		Region:       region.NewStack(),
		provOf:       map[string]region.Tag{},
		bindings:     map[string]*cleanup.Binding{},
		bindingTypes: map[string]*types.TypeRef{},
	}
}

// ProvOf implements region.BindingProv: it looks up the provenance
// recorded for name the last time a let bound it.
func (c *Checker) ProvOf(name string) (region.Tag, bool) {
	t, ok := c.provOf[name]
	return t, ok
}

// CheckExpr dispatches on e's concrete form and returns its type. On
// error it reports a diagnostic and returns NeverType so callers can keep
// checking the rest of the body without cascading unrelated errors.
func (c *Checker) CheckExpr(e ast.Expr) *types.TypeRef {
	switch x := e.(type) {
	case *ast.Literal:
		return c.checkLiteral(x)
	case *ast.Ident:
		return c.checkIdent(x)
	case *ast.PathExpr:
		return c.checkPath(x)
	case *ast.UnaryExpr:
		return c.checkUnary(x)
	case *ast.BinaryExpr:
		return c.checkBinary(x)
	case *ast.CallExpr:
		return c.checkCall(x)
	case *ast.MethodCallExpr:
		return c.checkMethodCall(x)
	case *ast.FieldExpr:
		return c.checkField(x)
	case *ast.TupleIndexExpr:
		return c.checkTupleIndex(x)
	case *ast.IndexExpr:
		return c.checkIndex(x)
	case *ast.DerefExpr:
		return c.checkDeref(x)
	case *ast.TupleExpr:
		return c.checkTuple(x)
	case *ast.RecordLitExpr:
		return c.checkRecordLit(x)
	case *ast.BlockExpr:
		return c.checkBlock(x)
	case *ast.IfExpr:
		return c.checkIf(x)
	case *ast.MatchExpr:
		return c.checkMatch(x)
	case *ast.LoopExpr:
		return c.checkLoop(x)
	case *ast.BreakExpr:
		return c.checkBreak(x)
	case *ast.ReturnExpr:
		return c.checkReturn(x)
	case *ast.TransmuteExpr:
		return c.checkTransmute(x)
	case *ast.WidenExpr:
		return c.checkWiden(x)
	case *ast.AsyncExpr:
		return c.checkAsync(x)
	case *ast.RegionExpr:
		return c.checkRegion(x)
	case *ast.FrameExpr:
		return c.checkFrame(x)
	case *ast.AllocExpr:
		return c.checkAlloc(x)
	case *ast.TransitionExpr:
		return c.checkTransition(x)
	default:
		c.errorf(e.Position(), diag.ESemTypeMismatch, "unrecognized expression form")
		return types.NeverType
	}
}

func (c *Checker) errorf(pos ast.Pos, code string, format string, args ...interface{}) {
	c.Diags.Add(diag.Diagnostic{
		Code:     code,
		Severity: diag.SeverityError,
		Span:     &diag.Span{File: pos.File, StartLine: pos.Line, StartCol: pos.Column},
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Checker) checkLiteral(l *ast.Literal) *types.TypeRef {
	switch l.Kind {
	case ast.IntLit:
		if l.Suffix != "" {
			return types.Prim(l.Suffix)
		}
		return types.Prim("i32")
	case ast.FloatLit:
		if l.Suffix != "" {
			return types.Prim(l.Suffix)
		}
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

func (c *Checker) checkIdent(id *ast.Ident) *types.TypeRef {
	name := resolve.NewIdKey(id.Name)
	if _, ok := resolve.ResolveValueName(c.Scope, name); !ok {
		c.errorf(id.Pos, diag.EResUnknownName, "undefined name %q", id.Name)
		return types.NeverType
	}
	if t, ok := c.Decls.ValueType(name); ok {
		return t
	}
	c.errorf(id.Pos, diag.EResUnknownName, "no type recorded for %q", id.Name)
	return types.NeverType
}

func (c *Checker) checkPath(p *ast.PathExpr) *types.TypeRef {
	// Qualified value references are resolved by internal/resolve during
	// the earlier name-resolution pass; by the time check runs, the decl
	// table is keyed by the resolved IdKey of the path's final segment.
	name := resolve.NewIdKey(p.Segments[len(p.Segments)-1])
	if t, ok := c.Decls.ValueType(name); ok {
		return t
	}
	c.errorf(p.Pos, diag.EResUnknownName, "undefined path %q", p.String())
	return types.NeverType
}

func (c *Checker) checkUnary(u *ast.UnaryExpr) *types.TypeRef {
	switch u.Op {
	case "&":
		base := c.CheckExpr(u.Expr)
		return types.PtrOf(base, types.PtrValid)
	case "&mut":
		base := c.CheckExpr(u.Expr)
		return types.PtrOf(base, types.PtrValid)
	case "*":
		return c.checkDeref(&ast.DerefExpr{Base: u.Expr, Pos: u.Pos})
	case "move":
		t := c.requirePlace(u.Expr)
		c.markMoved(u.Expr)
		return t
	case "-":
		t := c.CheckExpr(u.Expr)
		if !isNumeric(t) {
			c.errorf(u.Pos, diag.ESemTypeMismatch, "unary - requires a numeric operand")
			return types.NeverType
		}
		return t
	case "!":
		t := c.CheckExpr(u.Expr)
		if !types.TypeEquiv(types.StripPerm(t), types.Prim("bool")) {
			c.errorf(u.Pos, diag.ESemTypeMismatch, "unary ! requires a bool operand")
			return types.NeverType
		}
		return types.Prim("bool")
	default:
		c.errorf(u.Pos, diag.ESemTypeMismatch, "unknown unary operator %q", u.Op)
		return types.NeverType
	}
}

// requirePlace type-checks expr and verifies it denotes an addressable
// place — an identifier, field access, tuple index, index, or deref —
// since §4.8 only allows `move`/`&`/`&mut` on places, never on arbitrary
// rvalues.
func (c *Checker) requirePlace(e ast.Expr) *types.TypeRef {
	switch e.(type) {
	case *ast.Ident, *ast.PathExpr, *ast.FieldExpr, *ast.TupleIndexExpr, *ast.IndexExpr, *ast.DerefExpr:
		return c.CheckExpr(e)
	default:
		c.errorf(e.Position(), diag.ESemNotAPlace, "expression is not a place")
		return types.NeverType
	}
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}
var arithOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

func (c *Checker) checkBinary(b *ast.BinaryExpr) *types.TypeRef {
	lt := c.CheckExpr(b.Left)
	rt := c.CheckExpr(b.Right)

	switch {
	case arithOps[b.Op]:
		if !isNumeric(lt) || !types.TypeEquiv(types.StripPerm(lt), types.StripPerm(rt)) {
			c.errorf(b.Pos, diag.ESemTypeMismatch, "operator %q requires matching numeric operands", b.Op)
			return types.NeverType
		}
		return lt
	case comparisonOps[b.Op]:
		if !types.TypeEquiv(types.StripPerm(lt), types.StripPerm(rt)) {
			c.errorf(b.Pos, diag.ESemTypeMismatch, "operator %q requires operands of the same type", b.Op)
			return types.NeverType
		}
		return types.Prim("bool")
	case logicalOps[b.Op]:
		if !isBool(lt) || !isBool(rt) {
			c.errorf(b.Pos, diag.ESemTypeMismatch, "operator %q requires bool operands", b.Op)
			return types.NeverType
		}
		return types.Prim("bool")
	default:
		c.errorf(b.Pos, diag.ESemTypeMismatch, "unknown binary operator %q", b.Op)
		return types.NeverType
	}
}

func isNumeric(t *types.TypeRef) bool {
	t = types.StripPerm(t)
	if t == nil || t.Kind != types.KPrim {
		return false
	}
	switch t.PrimName {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64":
		return true
	default:
		return false
	}
}

func isBool(t *types.TypeRef) bool {
	t = types.StripPerm(t)
	return t != nil && t.Kind == types.KPrim && t.PrimName == "bool"
}

// checkCall implements the five Call-* error union members of §4.8:
// argument count, argument type, missing `move`, unexpected `move`, and
// move-argument-not-a-place.
func (c *Checker) checkCall(call *ast.CallExpr) *types.TypeRef {
	calleeName, ok := calleeIdent(call.Callee)
	if !ok {
		c.errorf(call.Pos, diag.ESemTypeMismatch, "call target must be a named function")
		return types.NeverType
	}
	sig, ok := c.Decls.FuncSig(resolve.NewIdKey(calleeName))
	if !ok {
		c.errorf(call.Pos, diag.EResUnknownName, "undefined function %q", calleeName)
		return types.NeverType
	}
	if len(call.Args) != len(sig.Params) {
		c.errorf(call.Pos, diag.ESemCallArgCount, "%q expects %d argument(s), found %d", calleeName, len(sig.Params), len(call.Args))
		return types.NeverType
	}
	ok = true
	for i, arg := range call.Args {
		param := sig.Params[i]
		if param.Move && !arg.Move {
			c.errorf(call.Pos, diag.ESemCallMoveMissing, "argument %d to %q must be moved", i+1, calleeName)
			ok = false
		}
		if !param.Move && arg.Move {
			c.errorf(call.Pos, diag.ESemCallMoveUnexpected, "argument %d to %q must not be moved", i+1, calleeName)
			ok = false
		}
		if arg.Move && !isPlace(arg.Value) {
			c.errorf(call.Pos, diag.ESemCallArgNotPlace, "moved argument %d to %q is not a place", i+1, calleeName)
			ok = false
		}
		if arg.Move {
			c.markMoved(arg.Value)
		}
		at := c.CheckExpr(arg.Value)
		if !types.Subtype(at, param.Type) && !types.TypeEquiv(at, param.Type) {
			c.errorf(call.Pos, diag.ESemCallArgType, "argument %d to %q has type %s, expected %s", i+1, calleeName, at, param.Type)
			ok = false
		}
	}
	if !ok {
		return types.NeverType
	}
	return sig.Ret
}

func calleeIdent(e ast.Expr) (string, bool) {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name, true
	case *ast.PathExpr:
		return v.Segments[len(v.Segments)-1], true
	default:
		return "", false
	}
}

func isPlace(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.PathExpr, *ast.FieldExpr, *ast.TupleIndexExpr, *ast.IndexExpr, *ast.DerefExpr:
		return true
	default:
		return false
	}
}

// checkMethodCall resolves the receiver's static type, looks up method
// candidates (own methods first, then class defaults), checks receiver
// permission compatibility, and flags ambiguity when more than one
// candidate survives (§4.9).
func (c *Checker) checkMethodCall(mc *ast.MethodCallExpr) *types.TypeRef {
	recvType := c.CheckExpr(mc.Receiver)
	base := types.StripPerm(recvType)
	if base.Kind != types.KPath && base.Kind != types.KModalState {
		c.errorf(mc.Pos, diag.ESemMethodNotFound, "method %q has no receiver type to dispatch on", mc.Method)
		return types.NeverType
	}
	cands, ok := c.Decls.Methods(base.Path, mc.Method)
	if !ok || len(cands) == 0 {
		c.errorf(mc.Pos, diag.ESemMethodNotFound, "no method %q on %s", mc.Method, base)
		return types.NeverType
	}
	var viable []*MethodSig
	recvPerm := types.PermConst
	if recvType.Kind == types.KPerm {
		recvPerm = recvType.PermQual
	}
	for _, m := range cands {
		if permCompatible(recvPerm, m.Recv) {
			viable = append(viable, m)
		}
	}
	if len(viable) == 0 {
		c.errorf(mc.Pos, diag.ESemReceiverPermission, "receiver permission is incompatible with %q", mc.Method)
		return types.NeverType
	}
	if len(viable) > 1 {
		c.errorf(mc.Pos, diag.ESemMethodAmbiguous, "call to %q is ambiguous between %d candidates", mc.Method, len(viable))
		return types.NeverType
	}
	sel := viable[0]
	if len(mc.Args) != len(sel.Params) {
		c.errorf(mc.Pos, diag.ESemCallArgCount, "%q expects %d argument(s), found %d", mc.Method, len(sel.Params), len(mc.Args))
		return types.NeverType
	}
	for i, arg := range mc.Args {
		at := c.CheckExpr(arg.Value)
		if !types.Subtype(at, sel.Params[i].Type) && !types.TypeEquiv(at, sel.Params[i].Type) {
			c.errorf(mc.Pos, diag.ESemCallArgType, "argument %d to %q has type %s, expected %s", i+1, mc.Method, at, sel.Params[i].Type)
		}
	}
	return sel.Ret
}

// permCompatible decides whether a receiver held at perm can call a
// method declared to need `need`: Unique satisfies any requirement,
// Shared satisfies Shared/Const, Const only satisfies Const.
func permCompatible(have, need types.Perm) bool {
	rank := map[types.Perm]int{types.PermUnique: 0, types.PermShared: 1, types.PermConst: 2}
	return rank[have] <= rank[need]
}

func (c *Checker) checkField(f *ast.FieldExpr) *types.TypeRef {
	base := types.StripPerm(c.CheckExpr(f.Base))
	if base.Kind != types.KPath && base.Kind != types.KModalState {
		c.errorf(f.Pos, diag.ESemNotAPlace, "field access on a non-record type")
		return types.NeverType
	}
	fields, ok := c.Decls.RecordFields(base.Path)
	if !ok {
		c.errorf(f.Pos, diag.EResUnknownName, "unknown type %s", base)
		return types.NeverType
	}
	for _, fs := range fields {
		if fs.Name == f.Field {
			return fs.Type
		}
	}
	c.errorf(f.Pos, diag.EResUnknownName, "no field %q on %s", f.Field, base)
	return types.NeverType
}

func (c *Checker) checkTupleIndex(t *ast.TupleIndexExpr) *types.TypeRef {
	base := types.StripPerm(c.CheckExpr(t.Base))
	if base.Kind != types.KTuple || t.Index < 0 || t.Index >= len(base.Elems) {
		c.errorf(t.Pos, diag.ESemNotIndexable, "tuple index %d is out of range", t.Index)
		return types.NeverType
	}
	return base.Elems[t.Index]
}

func (c *Checker) checkIndex(idx *ast.IndexExpr) *types.TypeRef {
	base := types.StripPerm(c.CheckExpr(idx.Base))
	it := c.CheckExpr(idx.Index)
	if !types.TypeEquiv(types.StripPerm(it), types.Prim("usize")) {
		c.errorf(idx.Pos, diag.ESemNotIndexable, "index expression must be usize, found %s", it)
	}
	switch base.Kind {
	case types.KArray, types.KSlice:
		return base.Base
	default:
		c.errorf(idx.Pos, diag.ESemNotIndexable, "%s is not indexable", base)
		return types.NeverType
	}
}

func (c *Checker) checkDeref(d *ast.DerefExpr) *types.TypeRef {
	base := types.StripPerm(c.CheckExpr(d.Base))
	switch base.Kind {
	case types.KPtr:
		if base.PtrSt != types.PtrValid {
			c.errorf(d.Pos, diag.ESemTypeMismatch, "cannot dereference a pointer not known to be Valid")
			return types.NeverType
		}
		return base.Base
	case types.KRawPtr:
		return base.Base
	default:
		c.errorf(d.Pos, diag.ESemNotAPlace, "cannot dereference a non-pointer type")
		return types.NeverType
	}
}

func (c *Checker) checkTuple(t *ast.TupleExpr) *types.TypeRef {
	elems := make([]*types.TypeRef, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = c.CheckExpr(e)
	}
	return types.TupleOf(elems...)
}

// checkRecordLit applies §4.8's DefaultConstructible rule: every field
// must be given or the record type must be registered default-
// constructible, in which case omitted fields take their declared
// default.
func (c *Checker) checkRecordLit(r *ast.RecordLitExpr) *types.TypeRef {
	path := []string{r.TypeName}
	fields, ok := c.Decls.RecordFields(path)
	if !ok {
		c.errorf(r.Pos, diag.EResUnknownName, "unknown record type %q", r.TypeName)
		return types.NeverType
	}
	given := map[string]bool{}
	byName := map[string]*types.TypeRef{}
	for _, f := range fields {
		byName[f.Name] = f.Type
	}
	for _, fi := range r.Fields {
		expected, ok := byName[fi.Name]
		if !ok {
			c.errorf(r.Pos, diag.EResUnknownName, "%q has no field %q", r.TypeName, fi.Name)
			continue
		}
		given[fi.Name] = true
		at := c.CheckExpr(fi.Value)
		if !types.Subtype(at, expected) && !types.TypeEquiv(at, expected) {
			c.errorf(r.Pos, diag.ESemTypeMismatch, "field %q has type %s, expected %s", fi.Name, at, expected)
		}
	}
	if len(given) != len(fields) && !c.Decls.DefaultConstructible(path) {
		c.errorf(r.Pos, diag.ESemDefaultConstruct, "%q omits fields and is not default-constructible", r.TypeName)
		return types.NeverType
	}
	return types.PathOf(path)
}

func (c *Checker) checkBlock(b *ast.BlockExpr) *types.TypeRef {
	c.Scope.Push()
	c.scopeBindings = append(c.scopeBindings, nil)
	defer func() {
		top := len(c.scopeBindings) - 1
		locals := c.scopeBindings[top]
		c.scopeBindings = c.scopeBindings[:top]
		c.DropPlan = append(c.DropPlan, cleanup.ComputeDropPlan(locals, c.fieldsOf)...)
		c.Scope.Pop()
	}()
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
	if b.Tail == nil {
		return types.UnitType
	}
	return c.CheckExpr(b.Tail)
}

// fieldsOf supplies cleanup.ComputeDropPlan the declared field names of a
// let-bound record value, so a partial move leaves only the remaining
// fields scheduled for drop.
func (c *Checker) fieldsOf(name string) []string {
	t, ok := c.bindingTypes[name]
	if !ok {
		return nil
	}
	base := types.StripPerm(t)
	if base == nil || base.Kind != types.KPath {
		return nil
	}
	fields, ok := c.Decls.RecordFields(base.Path)
	if !ok {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// markMoved records that e, when it denotes a tracked local binding, was
// just moved out of in whole — it drops out of its enclosing block's
// §4.11 cleanup plan.
func (c *Checker) markMoved(e ast.Expr) {
	name, ok := identName(e)
	if !ok {
		return
	}
	if b, ok := c.bindings[name]; ok {
		b.MarkMovedWhole()
	}
}

func identName(e ast.Expr) (string, bool) {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name, true
	case *ast.PathExpr:
		return v.Segments[len(v.Segments)-1], true
	default:
		return "", false
	}
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.LetStmt:
		var expected *types.TypeRef
		if st.Type != nil {
			expected, _ = types.LowerTypeExpr(st.Type, c.ConstLen)
		}
		it := c.CheckExpr(st.Init)
		if expected != nil && !types.Subtype(it, expected) && !types.TypeEquiv(it, expected) {
			c.errorf(st.Pos, diag.ESemTypeMismatch, "initializer has type %s, expected %s", it, expected)
		}
		binds, errs := pattern.TypePattern(st.Pattern, firstNonNil(expected, it), c.Decls)
		for _, e := range errs {
			c.Diags.Add(e)
		}
		prov := region.ProvExpr(st.Init, c.Region, c)
		resp := cleanup.Resp
		if u, ok := st.Init.(*ast.UnaryExpr); ok && (u.Op == "&" || u.Op == "&mut") {
			resp = cleanup.Alias // a let binding a borrow never owns the value it names
		}
		mov := cleanup.Mov
		if base := types.StripPerm(firstNonNil(expected, it)); base != nil && base.Kind == types.KPath {
			if ms, ok := c.Decls.Methods(base.Path, "drop"); ok && len(ms) > 0 {
				mov = cleanup.Immov // has a user Drop impl: must run it at scope exit unless moved away
			}
		}
		for _, bnd := range binds {
			c.Scope.Bind(resolve.NewIdKey(bnd.Name), &resolve.Entity{
				Kind: resolve.KindValue, Name: resolve.NewIdKey(bnd.Name), Source: resolve.SourceDecl,
			})
			c.provOf[bnd.Name] = prov
			c.bindingTypes[bnd.Name] = bnd.Type
			binding := cleanup.NewBinding(bnd.Name, mov, resp)
			c.bindings[bnd.Name] = binding
			if top := len(c.scopeBindings) - 1; top >= 0 {
				c.scopeBindings[top] = append(c.scopeBindings[top], binding)
			}
		}
	case *ast.AssignStmt:
		c.checkAssign(st)
	case *ast.DeferStmt:
		c.CheckExpr(st.Body)
	case *ast.ExprStmt:
		c.CheckExpr(st.X)
	}
}

// checkAssign type-checks `lhs = rhs` and applies §4.10's escape rule:
// lhs must be a place, rhs must be assignable to its type, and rhs's
// provenance must not outlive-fail against lhs's (region.CheckAssignment).
func (c *Checker) checkAssign(a *ast.AssignStmt) {
	lt := c.requirePlace(a.Lhs)
	rt := c.CheckExpr(a.Rhs)
	if !types.Subtype(rt, lt) && !types.TypeEquiv(rt, lt) {
		c.errorf(a.Pos, diag.ESemTypeMismatch, "cannot assign %s into a place of type %s", rt, lt)
	}
	lhsProv := region.ProvPlace(a.Lhs, c.Region, c)
	rhsProv := region.ProvExpr(a.Rhs, c.Region, c)
	if d := region.CheckAssignment(c.Region, lhsProv, rhsProv); d != nil {
		d.Span = &diag.Span{File: a.Pos.File, StartLine: a.Pos.Line, StartCol: a.Pos.Column}
		c.Diags.Add(*d)
	}
}

func firstNonNil(a, b *types.TypeRef) *types.TypeRef {
	if a != nil {
		return a
	}
	return b
}

func (c *Checker) checkIf(i *ast.IfExpr) *types.TypeRef {
	ct := c.CheckExpr(i.Cond)
	if !isBool(ct) {
		c.errorf(i.Pos, diag.ESemTypeMismatch, "if condition must be bool")
	}
	thenT := c.CheckExpr(i.Then)
	if i.Else == nil {
		return types.UnitType
	}
	elseT := c.CheckExpr(i.Else)
	return types.LUB([]*types.TypeRef{thenT, elseT})
}

func (c *Checker) checkMatch(m *ast.MatchExpr) *types.TypeRef {
	scrut := c.CheckExpr(m.Scrutinee)
	pats := make([]ast.Pattern, len(m.Arms))
	guarded := make([]bool, len(m.Arms))
	var bodyTypes []*types.TypeRef
	for i, arm := range m.Arms {
		pats[i] = arm.Pattern
		guarded[i] = arm.Guard != nil
		c.Scope.Push()
		binds, errs := pattern.TypePattern(arm.Pattern, scrut, c.Decls)
		for _, e := range errs {
			c.Diags.Add(e)
		}
		for _, bnd := range binds {
			c.Scope.Bind(resolve.NewIdKey(bnd.Name), &resolve.Entity{
				Kind: resolve.KindValue, Name: resolve.NewIdKey(bnd.Name), Source: resolve.SourceDecl,
			})
		}
		if arm.Guard != nil {
			gt := c.CheckExpr(arm.Guard)
			if !isBool(gt) {
				c.errorf(arm.Pos, diag.ESemGuardNotBool, "match guard must be bool")
			}
		}
		bodyTypes = append(bodyTypes, c.CheckExpr(arm.Body))
		c.Scope.Pop()
	}
	if ok, d := pattern.IsExhaustive(scrut, pats, guarded, c.Decls); !ok {
		c.Diags.Add(*d)
	}
	return types.LUB(bodyTypes)
}

// checkLoop implements §4.8's loop typing: the loop body is checked for
// its own side effects (its tail value is discarded — a loop only ever
// produces a value via `break`), and the loop's type is the LUB of every
// break value reached inside it, keyed to this loop by breakTypes'
// stack discipline so nested loops don't cross-contribute. A loop with
// no break at all never produces a value, so it types as `!`.
func (c *Checker) checkLoop(l *ast.LoopExpr) *types.TypeRef {
	c.loopDepth++
	c.breakTypes = append(c.breakTypes, nil)
	c.CheckExpr(l.Body)
	top := len(c.breakTypes) - 1
	breaks := c.breakTypes[top]
	c.breakTypes = c.breakTypes[:top]
	c.loopDepth--
	if len(breaks) == 0 {
		return types.NeverType
	}
	return types.LUB(breaks)
}

func (c *Checker) checkBreak(b *ast.BreakExpr) *types.TypeRef {
	if c.loopDepth == 0 || len(c.breakTypes) == 0 {
		c.errorf(b.Pos, diag.ESemTypeMismatch, "break outside a loop")
		return types.NeverType
	}
	vt := types.UnitType
	if b.Value != nil {
		vt = c.CheckExpr(b.Value)
	}
	top := len(c.breakTypes) - 1
	c.breakTypes[top] = append(c.breakTypes[top], vt)
	return types.NeverType
}

func (c *Checker) checkReturn(r *ast.ReturnExpr) *types.TypeRef {
	if r.Value != nil {
		c.CheckExpr(r.Value)
	}
	return types.NeverType
}

func (c *Checker) checkTransmute(t *ast.TransmuteExpr) *types.TypeRef {
	target, errs := types.LowerTypeExpr(t.Target, c.ConstLen)
	for range errs {
		c.errorf(t.Pos, diag.ESemTransmuteSize, "transmute target is malformed")
	}
	c.CheckExpr(t.Value)
	return target
}

// checkWiden implements §4.9's WF-Niche-Err: the source must be a
// concrete modal state, its modal type's spec must be registered in
// DeclTable, and modal.WidenTarget must accept the requested target.
func (c *Checker) checkWiden(w *ast.WidenExpr) *types.TypeRef {
	target, _ := types.LowerTypeExpr(w.Target, c.ConstLen)
	src := c.CheckExpr(w.Value)
	base := types.StripPerm(src)
	if base == nil || base.Kind != types.KModalState {
		c.errorf(w.Pos, diag.ESemNicheWiden, "widen source is not a concrete modal state")
		return types.NeverType
	}
	spec, ok := c.Decls.ModalSpec(base.Path)
	if !ok {
		c.errorf(w.Pos, diag.EResUnknownName, "unknown modal type %s", base)
		return types.NeverType
	}
	if d := modal.NicheWidenErr(spec, base.State, target); d != nil {
		d.Span = &diag.Span{File: w.Pos.File, StartLine: w.Pos.Line, StartCol: w.Pos.Column}
		c.Diags.Add(*d)
		return types.NeverType
	}
	return target
}

// checkAsync implements §4.11's async-capture rule: every argument
// handed into the spawned body must not be captured by stack/region
// provenance that could close before the task completes.
func (c *Checker) checkAsync(a *ast.AsyncExpr) *types.TypeRef {
	for _, arg := range a.Args {
		c.CheckExpr(arg)
		captured := region.ProvExpr(arg, c.Region, c)
		if d := region.CheckAsyncCapture(captured); d != nil {
			d.Span = &diag.Span{File: a.Pos.File, StartLine: a.Pos.Line, StartCol: a.Pos.Column}
			c.Diags.Add(*d)
		}
	}
	return types.PathOf([]string{"Task"})
}

func (c *Checker) checkRegion(r *ast.RegionExpr) *types.TypeRef {
	c.Scope.Push()
	c.Region.Push(r.Alias)
	defer func() {
		c.Region.Pop()
		c.Scope.Pop()
	}()
	return c.CheckExpr(r.Body)
}

func (c *Checker) checkFrame(f *ast.FrameExpr) *types.TypeRef {
	alias := f.Target
	if alias == "" {
		c.frameCounter++
		alias = fmt.Sprintf("frame$%d", c.frameCounter)
	}
	c.Scope.Push()
	c.Region.Push(alias)
	defer func() {
		c.Region.Pop()
		c.Scope.Pop()
	}()
	return c.CheckExpr(f.Body)
}

// checkAlloc implements `^alloc e [in region]`: the target region, if
// explicit, must be active in Π, matching §4.10's requirement that an
// alloc target a region currently in scope.
func (c *Checker) checkAlloc(a *ast.AllocExpr) *types.TypeRef {
	vt := c.CheckExpr(a.Value)
	if a.Region != "" && !c.Region.Active(a.Region) {
		c.errorf(a.Pos, diag.ProvEscapeErr, "alloc target region %q is not active", a.Region)
	}
	return types.PtrOf(vt, types.PtrValid)
}

func (c *Checker) checkTransition(t *ast.TransitionExpr) *types.TypeRef {
	recvType := c.CheckExpr(t.Receiver)
	base := types.StripPerm(recvType)
	return types.ModalStateOf(base.Path, t.Target)
}
