package typedir

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/cleanup"
	"github.com/cursivelang/cursive0/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindModuleLocatesByPath(t *testing.T) {
	p := &Program{Modules: []TypedModule{
		{Path: "std::list"},
		{Path: "app"},
	}}
	mod, ok := p.FindModule("app")
	require.True(t, ok)
	assert.Equal(t, "app", mod.Path)

	_, ok = p.FindModule("missing")
	assert.False(t, ok)
}

func TestTypedDeclStringIncludesKindAndType(t *testing.T) {
	d := TypedDecl{Name: "main", Kind: DeclProcedure, Type: types.Prim("unit")}
	assert.Contains(t, d.String(), "procedure main")
}

func TestPrettyRendersModulesAndDropPlan(t *testing.T) {
	p := &Program{Modules: []TypedModule{
		{
			Path:  "app",
			Decls: []TypedDecl{{Name: "x", Kind: DeclStatic, Type: types.Prim("int")}},
			DropPlan: []cleanup.DropStep{
				{Name: "x"},
				{Name: "y", PartialFields: []string{"f"}},
			},
		},
	}}
	out := Pretty(p)
	assert.Contains(t, out, "module app {")
	assert.Contains(t, out, "static x: int")
	assert.Contains(t, out, "drop x")
	assert.Contains(t, out, "drop y.[f]")
}
