package lang

import (
	"regexp"
	"strings"

	"github.com/Israel-Laguan/folder-summary/internal/model"
)

var (
	pyFromImportRe = regexp.MustCompile(`^from\s+(\S+)\s+import\s+(.+)$`)
	pyImportRe     = regexp.MustCompile(`^import\s+(.+)$`)
	pyDefRe        = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)\s*(?:->\s*([^:]+))?:`)
	pyClassRe      = regexp.MustCompile(`^(\s*)class\s+(\w+)`)
	pyAllRe        = regexp.MustCompile(`__all__\s*=\s*[\[(]([^\])]*)[\])]`)
	pyAllNameRe    = regexp.MustCompile(`['"](\w+)['"]`)
	pyReturnRe     = regexp.MustCompile(`^\s*return\b`)
)

func init() {
	Grammars["python"] = &Grammar{
		Name:       "python",
		Extensions: []string{".py", ".pyi"},
		Block:      IndentBlocks,
		Comment:    "#",
		Imports: []ImportRule{
			{Re: pyFromImportRe, Build: pyBuildFromImport},
			{Re: pyImportRe, Build: pyBuildImport},
		},
		Functions: []FunctionRule{
			{Re: pyDefRe, Build: pyBuildFunction, Exported: pyTopLevelPublic},
		},
		Types: []TypeRule{
			{Re: pyClassRe, Kind: "class", Exported: pyTopLevelPublic},
		},
		ReturnRe: pyReturnRe,
		Exports:  pyExports,
	}
}

func pyBuildFromImport(m []string) model.Import {
	imp := model.Import{Module: m[1]}
	for _, sym := range strings.Split(m[2], ",") {
		sym = strings.TrimSpace(sym)
		if i := strings.Index(sym, " as "); i >= 0 {
			sym = strings.TrimSpace(sym[:i])
		}
		if sym != "" && sym != "(" {
			imp.Symbols = append(imp.Symbols, sym)
		}
	}
	return imp
}

func pyBuildImport(m []string) model.Import {
	module := strings.TrimSpace(m[1])
	if i := strings.Index(module, " as "); i >= 0 {
		module = strings.TrimSpace(module[:i])
	}
	return model.Import{Module: module}
}

func pyBuildFunction(m []string) (string, string) {
	name := m[2]
	sig := "def " + name + "(" + strings.TrimSpace(m[3]) + ")"
	if ret := strings.TrimSpace(m[4]); ret != "" {
		sig += " -> " + ret
	}
	return name, sig + ":"
}

// pyTopLevelPublic marks unindented definitions without a leading underscore.
// Methods and nested defs are extracted but never exported.
func pyTopLevelPublic(m []string) bool {
	return m[1] == "" && !strings.HasPrefix(m[2], "_")
}

// pyExports prefers an __all__ list when present, filtered to names the file
// actually declares; otherwise every public top-level definition is exported.
func pyExports(fm *model.FileModel, source string) []string {
	if m := pyAllRe.FindStringSubmatch(source); m != nil {
		declared := declaredNames(fm)
		var out []string
		for _, nm := range pyAllNameRe.FindAllStringSubmatch(m[1], -1) {
			if declared[nm[1]] {
				out = append(out, nm[1])
			}
		}
		return out
	}

	var out []string
	for _, fn := range fm.Functions {
		if fn.Exported {
			out = append(out, fn.Name)
		}
	}
	for _, t := range fm.Types {
		if t.Exported {
			out = append(out, t.Name)
		}
	}
	return out
}
