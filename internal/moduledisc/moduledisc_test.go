package moduledisc

import (
	"testing"

	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister []string

func (f fakeLister) ListFiles(root string) ([]string, error) { return f, nil }

func TestDiscoverJoinsDirectoryComponentsWithDoubleColon(t *testing.T) {
	files, diags := Discover("proj", fakeLister{"std/list.cursive", "app.cursive"})
	require.Empty(t, diags)
	require.Len(t, files, 2)
	assert.Equal(t, "app", files[0].ModulePath)
	assert.Equal(t, "std::list", files[1].ModulePath)
}

func TestDiscoverSkipsNonCursiveFiles(t *testing.T) {
	files, diags := Discover("proj", fakeLister{"README.md", "main.cursive"})
	require.Empty(t, diags)
	require.Len(t, files, 1)
	assert.Equal(t, "main", files[0].ModulePath)
}

func TestDiscoverRejectsInvalidComponent(t *testing.T) {
	_, diags := Discover("proj", fakeLister{"123bad/mod.cursive"})
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EModBadComponent, diags[0].Code)
}

func TestDiscoverRejectsKeywordComponent(t *testing.T) {
	_, diags := Discover("proj", fakeLister{"module/mod.cursive"})
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EModBadComponent, diags[0].Code)
}

func TestDiscoverDetectsCaseFoldedCollision(t *testing.T) {
	_, diags := Discover("proj", fakeLister{"std/List.cursive", "std/list.cursive"})
	require.NotEmpty(t, diags)
	assert.Equal(t, diag.EModCaseCollide, diags[0].Code)
}

func TestDiscoverIsDeterministicRegardlessOfInputOrder(t *testing.T) {
	files1, _ := Discover("proj", fakeLister{"b.cursive", "a.cursive"})
	files2, _ := Discover("proj", fakeLister{"a.cursive", "b.cursive"})
	require.Len(t, files1, 2)
	require.Len(t, files2, 2)
	assert.Equal(t, files1, files2)
}
