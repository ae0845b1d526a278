package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBody(t *testing.T) {
	a := HashBody("fn eq() { return 1; }")
	b := HashBody("fn eq() { return 1; }")
	c := HashBody("fn eq() { return 2; }")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestProjectAddRejectsDuplicates(t *testing.T) {
	p := NewProject()
	require.NoError(t, p.Add(&FileModel{Path: "src/lib.rs"}))

	err := p.Add(&FileModel{Path: "src/lib.rs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate file path")
	assert.Equal(t, 1, p.Len())
}

func TestProjectPreservesInsertionOrder(t *testing.T) {
	p := NewProject()
	paths := []string{"z.rs", "a.py", "m.ts"}
	for _, path := range paths {
		require.NoError(t, p.Add(&FileModel{Path: path}))
	}

	files := p.Files()
	require.Len(t, files, 3)
	for i, fm := range files {
		assert.Equal(t, paths[i], fm.Path)
	}
}

func TestProjectFunctions(t *testing.T) {
	p := NewProject()
	require.NoError(t, p.Add(&FileModel{
		Path:      "a.rs",
		Functions: []*FunctionEntry{{Name: "one"}, {Name: "two"}},
	}))
	require.NoError(t, p.Add(&FileModel{
		Path:      "b.rs",
		Functions: []*FunctionEntry{{Name: "three"}},
	}))

	fns := p.Functions()
	require.Len(t, fns, 3)
	assert.Equal(t, "one", fns[0].Name)
	assert.Equal(t, "three", fns[2].Name)

	// entries are shared, not copied: pipeline writes reach the project
	fns[2].Description = "marked"
	fm, ok := p.Get("b.rs")
	require.True(t, ok)
	assert.Equal(t, "marked", fm.Functions[0].Description)
}
