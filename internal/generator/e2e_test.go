package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Israel-Laguan/folder-summary/internal/analyzer"
	"github.com/Israel-Laguan/folder-summary/internal/crawler"
	"github.com/Israel-Laguan/folder-summary/internal/generator"
	"github.com/Israel-Laguan/folder-summary/internal/llm"
)

type stubLLM struct{}

func (stubLLM) Summarize(context.Context, llm.Request) (string, error) {
	return "Computes X.", nil
}

func (stubLLM) ModelName() string { return "stub" }

const rustFixture = `use std::collections::HashMap;

pub fn lookup(map: &HashMap<String, i32>, key: &str) -> i32 {
    if let Some(v) = map.get(key) {
        return *v;
    }
    return 0;
}
`

func TestScanDescribeRender(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "lib.rs"), []byte(rustFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# demo\n"), 0o644))

	result, err := analyzer.Analyze(root, 2)
	require.NoError(t, err)
	require.Equal(t, 1, result.Project.Len())
	require.Empty(t, result.Diagnostics)

	pipeline := llm.NewPipeline(stubLLM{}, "stub", "model", llm.NewCache(""), llm.PipelineOptions{
		Workers: 2,
		Retries: 1,
	})
	diags := pipeline.Run(context.Background(), result.Project)
	require.Empty(t, diags)

	out := generator.Render(generator.Report{
		ProjectName: "demo",
		Docs:        crawler.DocFiles(root),
		Packages:    crawler.PackageInfo(root),
		Project:     result.Project,
	})

	assert.Contains(t, out, "# Code Summary: demo")
	assert.Contains(t, out, "- README.md")
	assert.Contains(t, out, "### src/lib.rs (rust)")
	assert.Contains(t, out, "- std::collections::HashMap")
	assert.Contains(t, out, "- `lookup`")
	assert.Contains(t, out, "Return points: 2")
	assert.Contains(t, out, "Computes X.")
	assert.NotContains(t, out, "_No description available._")
}
