package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("hello world"),
		[]byte("café — naïve"),
		[]byte("日本語"),
		{},
	}
	for _, in := range inputs {
		d := Decode(in)
		require.True(t, d.OK, "expected clean decode for %q", in)
		assert.Equal(t, in, EncodeUtf8(d.Scalars))
	}
}

func TestDecodeRejectsEmbeddedBOM(t *testing.T) {
	in := []byte{'a', 'b', 0xEF, 0xBB, 0xBF, 'c'}
	d := Decode(in)
	require.False(t, d.OK)
	require.Len(t, d.Diags, 1)
	assert.Equal(t, "embedded-bom", d.Diags[0].Kind)
}

func TestStripBOM(t *testing.T) {
	stripped, had := StripBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	assert.True(t, had)
	assert.Equal(t, []byte("x"), stripped)

	stripped, had = StripBOM([]byte("x"))
	assert.False(t, had)
	assert.Equal(t, []byte("x"), stripped)
}

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, []byte("a\nb\nc\n"), NormalizeLineEndings([]byte("a\r\nb\rc\n")))
}

func TestLineStarts(t *testing.T) {
	starts := LineStarts([]byte("ab\ncd\n\ne"))
	assert.Equal(t, []int{0, 3, 6, 7}, starts)
}

func TestIdentClassification(t *testing.T) {
	assert.True(t, IsIdentStart('_'))
	assert.True(t, IsIdentStart('a'))
	assert.False(t, IsIdentStart('1'))
	assert.True(t, IsIdentContinue('1'))
	assert.False(t, IsIdentContinue(' '))
}

func TestNonCharacter(t *testing.T) {
	assert.True(t, IsNonCharacter(0xFDD0))
	assert.True(t, IsNonCharacter(0xFDEF))
	assert.True(t, IsNonCharacter(0x1FFFE))
	assert.False(t, IsNonCharacter('a'))
}

func TestProhibited(t *testing.T) {
	assert.False(t, IsProhibited('\t'))
	assert.False(t, IsProhibited('\n'))
	assert.True(t, IsProhibited(0x01))
	assert.True(t, IsProhibited(0x7F))
	assert.False(t, IsProhibited('a'))
}

func TestNoProhibitedIgnoresLiteralSpans(t *testing.T) {
	// A literal string containing a raw control byte at byte offset 1.
	scalars := []rune{'"', 0x01, '"'}
	byteOffs := []int{0, 1, 2}
	spans := []LiteralSpan{{Start: 0, End: 3}}
	assert.True(t, NoProhibited(scalars, byteOffs, spans))
	assert.False(t, NoProhibited(scalars, byteOffs, nil))
}

func TestNFCIdempotent(t *testing.T) {
	s := "café"
	once := NFCString(s)
	twice := NFCString(once)
	assert.Equal(t, once, twice)
}
