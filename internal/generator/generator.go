// Package generator renders an analyzed Project into a markdown report.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Israel-Laguan/folder-summary/internal/model"
)

const noDescription = "_No description available._"

// Report bundles everything the renderer needs for one run.
type Report struct {
	ProjectName string
	Docs        []string
	Packages    map[string]string
	Project     *model.Project
	Diagnostics []string
}

// Render produces the full markdown document. Output is deterministic:
// files appear in project order, map-backed sections are sorted.
func Render(r Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Code Summary: %s\n\n", r.ProjectName)

	if len(r.Docs) > 0 {
		sb.WriteString("## Documentation Files\n")
		for _, doc := range r.Docs {
			fmt.Fprintf(&sb, "- %s\n", doc)
		}
		sb.WriteString("\n")
	}

	if len(r.Packages) > 0 {
		sb.WriteString("## Package Information\n")
		names := make([]string, 0, len(r.Packages))
		for name := range r.Packages {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "- %s: %s\n", name, r.Packages[name])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Code Analysis\n\n")
	for _, fm := range r.Project.Files() {
		renderFile(&sb, fm)
	}

	if len(r.Diagnostics) > 0 {
		sb.WriteString("## Diagnostics\n")
		for _, diag := range r.Diagnostics {
			fmt.Fprintf(&sb, "- %s\n", diag)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderFile(sb *strings.Builder, fm *model.FileModel) {
	fmt.Fprintf(sb, "### %s (%s)\n\n", fm.Path, fm.Language)

	if len(fm.Imports) > 0 {
		sb.WriteString("**Imports:**\n")
		for _, imp := range fm.Imports {
			if len(imp.Symbols) > 0 {
				fmt.Fprintf(sb, "- %s (%s)\n", imp.Module, strings.Join(imp.Symbols, ", "))
			} else {
				fmt.Fprintf(sb, "- %s\n", imp.Module)
			}
		}
		sb.WriteString("\n")
	}

	if len(fm.Exports) > 0 {
		sb.WriteString("**Exports:**\n")
		for _, export := range fm.Exports {
			fmt.Fprintf(sb, "- %s\n", export)
		}
		sb.WriteString("\n")
	}

	if len(fm.Types) > 0 {
		sb.WriteString("**Types:**\n")
		for _, t := range fm.Types {
			fmt.Fprintf(sb, "- %s `%s` (line %d)\n", t.Kind, t.Name, t.Line)
		}
		sb.WriteString("\n")
	}

	if len(fm.Functions) > 0 {
		sb.WriteString("**Functions:**\n")
		for _, fn := range fm.Functions {
			fmt.Fprintf(sb, "- `%s`\n", fn.Name)
			if fn.Signature != "" {
				fmt.Fprintf(sb, "  - Signature: `%s`\n", fn.Signature)
			}
			fmt.Fprintf(sb, "  - Lines: %d\n", fn.Lines)
			fmt.Fprintf(sb, "  - Return points: %d\n", fn.ReturnPoints)
			if fn.Description != "" {
				fmt.Fprintf(sb, "  - %s\n", fn.Description)
			} else {
				fmt.Fprintf(sb, "  - %s\n", noDescription)
			}
		}
		sb.WriteString("\n")
	}
}

// Write renders the report and saves it to path, creating parent
// directories as needed.
func Write(path string, r Report) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
