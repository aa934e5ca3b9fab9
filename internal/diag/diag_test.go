package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessageSubstitutesKnownLeavesUnknown(t *testing.T) {
	got := FormatMessage("expected {expected}, found {found}, also {missing}", map[string]string{
		"expected": "i32",
		"found":    "bool",
	})
	assert.Equal(t, "expected i32, found bool, also {missing}", got)
}

func TestMessageFallsBackToCodeWhenUnknown(t *testing.T) {
	assert.Equal(t, "E-NOPE-9999", Message("en", "E-NOPE-9999", nil))
}

func TestMessageKnownCode(t *testing.T) {
	got := Message("en", EPrjUnknownKey, map[string]string{"key": "foo"})
	assert.Contains(t, got, "foo")
}

func TestStreamOK(t *testing.T) {
	var s Stream
	assert.True(t, s.OK())
	s.Warnf(WSrcLeadingBOM, nil, "en", nil)
	assert.True(t, s.OK())
	s.Errorf(ESemTypeMismatch, nil, "en", map[string]string{"expected": "i32", "found": "bool"})
	assert.False(t, s.OK())
	require.Len(t, s.All(), 2)
}

func TestStreamMerge(t *testing.T) {
	var a, b Stream
	a.Warnf(WSrcLeadingBOM, nil, "en", nil)
	b.Errorf(ESemTypeMismatch, nil, "en", nil)
	a.Merge(&b)
	assert.Len(t, a.All(), 2)
	assert.False(t, a.OK())
}

func TestEncodeJSONDeterministic(t *testing.T) {
	diags := []Diagnostic{
		{Code: "E-SEM-0201", Severity: SeverityError, Message: "boom", Span: &Span{File: "a.cursive", StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}},
		{Code: "W-SRC-0104", Severity: SeverityWarning, Message: "bom stripped"},
	}
	out1, err := EncodeJSON(diags)
	require.NoError(t, err)
	out2, err := EncodeJSON(diags)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.Contains(t, string(out1), `"span":{"file":"a.cursive"`)
	assert.Contains(t, string(out1), `"span":null`)
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	RenderPlain(&buf, []Diagnostic{{Code: "E-SEM-0201", Severity: SeverityError, Message: "boom"}})
	assert.Contains(t, buf.String(), "E-SEM-0201")
	assert.Contains(t, buf.String(), "boom")
}
