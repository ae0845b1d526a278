package lang

import (
	"regexp"
	"strings"

	"github.com/Israel-Laguan/folder-summary/internal/model"
)

var (
	jsImportRe    = regexp.MustCompile(`^\s*import\s+(?:(.+?)\s+from\s+)?['"]([^'"]+)['"]`)
	jsRequireRe   = regexp.MustCompile(`^\s*(?:const|let|var)\s+(?:\{([^}]*)\}|(\w+))\s*=\s*require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	jsFuncRe      = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(([^)]*)\)(?:\s*:\s*([^{]+))?`)
	jsArrowRe     = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?\(([^)]*)\)(?:\s*:\s*([^=]+))?\s*=>`)
	jsInterfaceRe = regexp.MustCompile(`^\s*(export\s+)?(?:declare\s+)?interface\s+(\w+)`)
	jsEnumRe      = regexp.MustCompile(`^\s*(export\s+)?(?:declare\s+)?(?:const\s+)?enum\s+(\w+)`)
	jsClassRe     = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(\w+)`)
	jsAliasRe     = regexp.MustCompile(`^\s*(export\s+)?type\s+(\w+)\s*(?:<[^>]*>)?\s*=`)
	jsExportsRe   = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
	jsReturnRe    = regexp.MustCompile(`\breturn\b`)
)

func init() {
	g := &Grammar{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
		Block:      BraceBlocks,
		Comment:    "//",
		Imports: []ImportRule{
			{Re: jsImportRe, Build: jsBuildImport},
			{Re: jsRequireRe, Build: jsBuildRequire},
		},
		Functions: []FunctionRule{
			{Re: jsFuncRe, Build: jsBuildFunction, Exported: jsMarkerPresent},
			{Re: jsArrowRe, Build: jsBuildArrow, Exported: jsMarkerPresent},
		},
		Types: []TypeRule{
			{Re: jsInterfaceRe, Kind: "interface", Exported: jsMarkerPresent},
			{Re: jsEnumRe, Kind: "enum", Exported: jsMarkerPresent},
			{Re: jsClassRe, Kind: "class", Exported: jsMarkerPresent},
			{Re: jsAliasRe, Kind: "alias", Exported: jsMarkerPresent},
		},
		ReturnRe: jsReturnRe,
		Exports:  jsExports,
	}
	Grammars[g.Name] = g
}

func jsBuildImport(m []string) model.Import {
	imp := model.Import{Module: m[2]}
	clause := strings.TrimSpace(m[1])
	if i := strings.Index(clause, "{"); i >= 0 {
		if j := strings.Index(clause, "}"); j > i {
			for _, sym := range strings.Split(clause[i+1:j], ",") {
				sym = strings.TrimSpace(sym)
				if sym != "" {
					imp.Symbols = append(imp.Symbols, sym)
				}
			}
		}
	} else if clause != "" && !strings.HasPrefix(clause, "*") {
		imp.Symbols = append(imp.Symbols, clause)
	}
	return imp
}

func jsBuildRequire(m []string) model.Import {
	imp := model.Import{Module: m[3]}
	if m[1] != "" {
		for _, sym := range strings.Split(m[1], ",") {
			sym = strings.TrimSpace(sym)
			if sym != "" {
				imp.Symbols = append(imp.Symbols, sym)
			}
		}
	} else if m[2] != "" {
		imp.Symbols = append(imp.Symbols, m[2])
	}
	return imp
}

func jsBuildFunction(m []string) (string, string) {
	name := m[2]
	sig := "function " + name + "(" + strings.TrimSpace(m[3]) + ")"
	if ret := strings.TrimSpace(m[4]); ret != "" {
		sig += ": " + ret
	}
	return name, sig
}

func jsBuildArrow(m []string) (string, string) {
	name := m[2]
	sig := "const " + name + " = (" + strings.TrimSpace(m[3]) + ")"
	if ret := strings.TrimSpace(m[4]); ret != "" {
		sig += ": " + ret
	}
	return name, sig + " =>"
}

func jsMarkerPresent(m []string) bool {
	return strings.TrimSpace(m[1]) != ""
}

// jsExports combines export-prefixed declarations with `export { ... }`
// statements, keeping only names that the file actually declares.
func jsExports(fm *model.FileModel, source string) []string {
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

	declared := declaredNames(fm)
	for _, m := range jsExportsRe.FindAllStringSubmatch(source, -1) {
		for _, sym := range strings.Split(m[1], ",") {
			sym = strings.TrimSpace(sym)
			// "name as alias" re-exports the declared name
			if i := strings.Index(sym, " as "); i >= 0 {
				sym = strings.TrimSpace(sym[:i])
			}
			if declared[sym] {
				out = append(out, sym)
			}
		}
	}
	return out
}
