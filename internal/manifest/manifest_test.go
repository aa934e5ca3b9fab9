package manifest

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSingleAssemblyTable(t *testing.T) {
	src := `
[assembly]
name = "hello"
kind = "executable"
root = "src"
`
	doc, diags := Decode(src)
	require.Empty(t, diags)
	require.NotNil(t, doc)
	require.Len(t, doc.Assemblies, 1)
	assert.Equal(t, "hello", doc.Assemblies[0].Name)
	assert.Equal(t, KindExecutable, doc.Assemblies[0].Kind)
}

func TestDecodeArrayOfAssemblies(t *testing.T) {
	src := `
[[assembly]]
name = "app"
kind = "executable"
root = "src/app"

[[assembly]]
name = "lib"
kind = "library"
root = "src/lib"
`
	doc, diags := Decode(src)
	require.Empty(t, diags)
	require.Len(t, doc.Assemblies, 2)
	assert.Equal(t, "app", doc.Assemblies[0].Name)
	assert.Equal(t, "lib", doc.Assemblies[1].Name)
}

func TestDecodeUnknownKeyReported(t *testing.T) {
	src := `
[assembly]
name = "hello"
kind = "executable"
root = "src"
bogus = "nope"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EPrjUnknownKey, diags[0].Code)
}

func TestDecodeDuplicateAssemblyNameReported(t *testing.T) {
	src := `
[[assembly]]
name = "app"
kind = "executable"
root = "src/app"

[[assembly]]
name = "app"
kind = "library"
root = "src/lib"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Code == diag.EPrjDuplicateKey {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDecodeMissingRequiredField(t *testing.T) {
	src := `
[assembly]
name = "hello"
root = "src"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EPrjMissingField, diags[0].Code)
}

func TestDecodeInvalidNameNotIdentifier(t *testing.T) {
	src := `
[assembly]
name = "123bad"
kind = "executable"
root = "src"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EPrjBadName, diags[0].Code)
}

func TestDecodeNameCannotBeKeyword(t *testing.T) {
	src := `
[assembly]
name = "module"
kind = "executable"
root = "src"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EPrjBadName, diags[0].Code)
}

func TestDecodeRootEscapingProjectRootRejected(t *testing.T) {
	src := `
[assembly]
name = "hello"
kind = "executable"
root = "../outside"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EPrjBadPath, diags[0].Code)
}

func TestDecodeInvalidKindRejected(t *testing.T) {
	src := `
[assembly]
name = "hello"
kind = "daemon"
root = "src"
`
	_, diags := Decode(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EPrjBadKind, diags[0].Code)
}

func TestDecodeEmitIRValidValuesAccepted(t *testing.T) {
	src := `
[assembly]
name = "hello"
kind = "executable"
root = "src"
emit_ir = "ll"
`
	doc, diags := Decode(src)
	require.Empty(t, diags)
	assert.Equal(t, EmitLL, doc.Assemblies[0].EmitIR)
}
