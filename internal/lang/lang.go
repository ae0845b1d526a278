// Package lang provides the grammar registry: a table of variation points per
// supported language consumed by the shared scanning core in
// internal/extractor. Per-language files populate Grammars in init().
package lang

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/Israel-Laguan/folder-summary/internal/model"
)

// BlockStyle determines how a function body is delimited.
type BlockStyle int

const (
	// BraceBlocks counts '{'/'}' depth to find the end of a body.
	BraceBlocks BlockStyle = iota
	// IndentBlocks ends a body when indentation returns to or below the
	// defining line's level.
	IndentBlocks
)

// ImportRule matches an import statement and builds the Import from the
// regex submatches.
type ImportRule struct {
	Re    *regexp.Regexp
	Build func(m []string) model.Import
}

// FunctionRule matches a function definition line. Build derives the declared
// name and a lightly normalized signature from the submatches; Exported
// reports whether the definition carries the grammar's export marker.
type FunctionRule struct {
	Re       *regexp.Regexp
	Build    func(m []string) (name, signature string)
	Exported func(m []string) bool
}

// TypeRule matches a type declaration line.
type TypeRule struct {
	Re       *regexp.Regexp
	Kind     string
	Exported func(m []string) bool
}

// Grammar holds everything the scanning core needs to know about one
// language. The scanner itself contains no per-language branching.
type Grammar struct {
	Name       string
	Extensions []string
	Block      BlockStyle
	Comment    string // line-comment prefix, skipped before matching

	Imports   []ImportRule
	Functions []FunctionRule
	Types     []TypeRule

	// ReturnRe counts return-like statements inside a body. Best effort: a
	// keyword inside a string or block comment may be miscounted.
	ReturnRe *regexp.Regexp

	// Exports derives the exported symbol set from the already-extracted
	// declarations (and the raw source, for __all__-style lists). It must
	// never return a name that is not declared in the file.
	Exports func(fm *model.FileModel, source string) []string
}

// Grammars maps grammar names to their tables.
// Populated by init() functions in per-language files.
var Grammars = map[string]*Grammar{}

var (
	extensionMap  map[string]string
	extensionOnce sync.Once
)

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, g := range Grammars {
			for _, ext := range g.Extensions {
				extensionMap[ext] = g.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the grammar name for a file extension, or "" if
// unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[strings.ToLower(ext)]
}

// Detect classifies a file path into a supported grammar name, or "" when the
// extension is unsupported. Pure and total: unknown extensions route to skip,
// never to an error.
func Detect(path string) string {
	return ForExtension(filepath.Ext(path))
}

// declaredNames collects every top-level name the extractor found in a file.
func declaredNames(fm *model.FileModel) map[string]bool {
	names := make(map[string]bool)
	for _, fn := range fm.Functions {
		names[fn.Name] = true
	}
	for _, t := range fm.Types {
		names[t.Name] = true
	}
	return names
}
