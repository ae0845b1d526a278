package lang

import (
	"regexp"
	"strings"

	"github.com/Israel-Laguan/folder-summary/internal/model"
)

var (
	rustUseRe    = regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)(?:::\{([^}]*)\})?\s*;`)
	rustFnRe     = regexp.MustCompile(`^\s*(pub(?:\([^()]*\))?\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+(\w+)\s*(?:<[^>]*>)?\s*\(([^)]*)\)\s*(?:->\s*([^{;]+))?`)
	rustStructRe = regexp.MustCompile(`^\s*(pub(?:\([^()]*\))?\s+)?struct\s+(\w+)`)
	rustEnumRe   = regexp.MustCompile(`^\s*(pub(?:\([^()]*\))?\s+)?enum\s+(\w+)`)
	rustTraitRe  = regexp.MustCompile(`^\s*(pub(?:\([^()]*\))?\s+)?trait\s+(\w+)`)
	rustAliasRe  = regexp.MustCompile(`^\s*(pub(?:\([^()]*\))?\s+)?type\s+(\w+)`)
	rustReturnRe = regexp.MustCompile(`\breturn\b`)
)

func init() {
	Grammars["rust"] = &Grammar{
		Name:       "rust",
		Extensions: []string{".rs"},
		Block:      BraceBlocks,
		Comment:    "//",
		Imports: []ImportRule{
			{Re: rustUseRe, Build: rustBuildImport},
		},
		Functions: []FunctionRule{
			{Re: rustFnRe, Build: rustBuildFunction, Exported: rustMarkerPresent},
		},
		Types: []TypeRule{
			{Re: rustStructRe, Kind: "struct", Exported: rustMarkerPresent},
			{Re: rustEnumRe, Kind: "enum", Exported: rustMarkerPresent},
			{Re: rustTraitRe, Kind: "trait", Exported: rustMarkerPresent},
			{Re: rustAliasRe, Kind: "alias", Exported: rustMarkerPresent},
		},
		ReturnRe: rustReturnRe,
		Exports:  rustExports,
	}
}

func rustBuildImport(m []string) model.Import {
	imp := model.Import{Module: m[1]}
	if m[2] != "" {
		for _, sym := range strings.Split(m[2], ",") {
			sym = strings.TrimSpace(sym)
			if sym != "" {
				imp.Symbols = append(imp.Symbols, sym)
			}
		}
	}
	return imp
}

func rustBuildFunction(m []string) (string, string) {
	name := m[2]
	sig := "fn " + name + "(" + strings.TrimSpace(m[3]) + ")"
	if ret := strings.TrimSpace(m[4]); ret != "" {
		sig += " -> " + ret
	}
	return name, sig
}

// rustMarkerPresent treats any pub visibility (including pub(crate)) as
// exported. Crate-scoped items are still part of the file's surface.
func rustMarkerPresent(m []string) bool {
	return strings.TrimSpace(m[1]) != ""
}

func rustExports(fm *model.FileModel, _ string) []string {
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
