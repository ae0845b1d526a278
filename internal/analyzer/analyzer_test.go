package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzeSkipsBrokenFileAndContinues(t *testing.T) {
	root := t.TempDir()

	for i := 0; i < 3; i++ {
		writeFile(t, root, fmt.Sprintf("src/mod%d.rs", i), "pub fn go() { return; }\n")
		writeFile(t, root, fmt.Sprintf("lib/util%d.ts", i), "export function go() { return 1; }\n")
		writeFile(t, root, fmt.Sprintf("tools/run%d.py", i), "def go():\n    return 1\n")
	}
	// invalid UTF-8 must become a diagnostic, not a failure
	require.NoError(t, os.WriteFile(filepath.Join(root, "binary.rs"), []byte{0xff, 0xfe, 0x00}, 0o644))

	result, err := Analyze(root, 4)
	require.NoError(t, err)

	assert.Equal(t, 9, result.Project.Len())
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0], "binary.rs")
}

func TestAnalyzeUnreadableRootFails(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "does-not-exist"), 2)
	require.Error(t, err)
}

func TestAnalyzeOrderIndependentOfWorkers(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 12; i++ {
		writeFile(t, root, fmt.Sprintf("pkg/f%02d.py", i), fmt.Sprintf("def f%02d():\n    return %d\n", i, i))
	}

	serial, err := Analyze(root, 1)
	require.NoError(t, err)
	parallel, err := Analyze(root, 8)
	require.NoError(t, err)

	require.Equal(t, serial.Project.Len(), parallel.Project.Len())
	sf := serial.Project.Files()
	pf := parallel.Project.Files()
	for i := range sf {
		assert.Equal(t, sf[i].Path, pf[i].Path)
		assert.Equal(t, sf[i].Functions[0].BodyHash, pf[i].Functions[0].BodyHash)
	}
}

func TestAnalyzeEmptyDirectory(t *testing.T) {
	result, err := Analyze(t.TempDir(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Project.Len())
	assert.Empty(t, result.Diagnostics)
}
