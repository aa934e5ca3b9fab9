package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("procedure"))
	assert.False(t, IsReserved("foo"))
}

func TestUnsupportedConstructYieldsKeywordLike(t *testing.T) {
	assert.True(t, IsUnsupportedConstruct("derive"))
	assert.True(t, IsKeywordLike("derive"))
	assert.True(t, IsKeywordLike("procedure"))
	assert.False(t, IsKeywordLike("wait"))
}

func TestContextualNotKeywordLike(t *testing.T) {
	assert.True(t, IsContextual("wait"))
	assert.False(t, IsReserved("wait"))
	assert.False(t, IsUnsupportedConstruct("wait"))
}

func TestOperatorsClosed(t *testing.T) {
	ops := Operators()
	assert.NotEmpty(t, ops)
	ops[0] = "mutated"
	assert.NotEqual(t, ops[0], Operators()[0])
}
